package attendance

import (
	"math"
	"time"

	attendanceerrors "dayflow/internal/attendance/errors"
)

const timeOfDayLayout = "15:04:05"

// Ambang status harian dalam jam kerja bersih.
const (
	halfDayThresholdHours = 4.0
	presentThresholdHours = 7.5
)

// DeriveStatus memetakan jam kerja bersih ke status harian.
// Dipisah sebagai fungsi murni agar ambangnya bisa diuji tanpa persistence.
func DeriveStatus(workingHours float64) string {
	switch {
	case workingHours < halfDayThresholdHours:
		return StatusAbsent
	case workingHours < presentThresholdHours:
		return StatusHalfDay
	default:
		return StatusPresent
	}
}

// minutesSinceMidnight mengubah "HH:MM:SS" menjadi menit sejak tengah malam.
func minutesSinceMidnight(v string) (float64, error) {
	t, err := time.Parse(timeOfDayLayout, v)
	if err != nil {
		return 0, attendanceerrors.ErrInvalidTimeFormat
	}
	return float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60, nil
}

// BreakDurationMinutes menghitung lebar jendela istirahat dalam menit bulat.
// Durasi negatif (end sebelum start) di-clamp ke 0.
func BreakDurationMinutes(breakStart, breakEnd string) (int, error) {
	start, err := minutesSinceMidnight(breakStart)
	if err != nil {
		return 0, err
	}
	end, err := minutesSinceMidnight(breakEnd)
	if err != nil {
		return 0, err
	}
	return int(math.Round(math.Max(0, end-start))), nil
}

// ComputeWorkingHours menghitung jam kerja bersih: selisih check-in/check-out
// dikurangi istirahat, di-clamp ke 0, dibulatkan 2 desimal.
func ComputeWorkingHours(checkIn, checkOut string, breakMinutes int) (float64, error) {
	in, err := minutesSinceMidnight(checkIn)
	if err != nil {
		return 0, err
	}
	out, err := minutesSinceMidnight(checkOut)
	if err != nil {
		return 0, err
	}

	totalMinutes := out - in
	workingMinutes := math.Max(0, totalMinutes-float64(breakMinutes))
	return round2(workingMinutes / 60), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package payroll

import (
	"math"
	"time"
)

// StandardWorkingDays adalah konstanta kebijakan hari kerja per bulan.
const StandardWorkingDays = 22

type ComputeInput struct {
	BasicSalary     float64
	PresentDays     int
	HalfDays        int
	PaidLeaveDays   int
	UnpaidLeaveDays int
}

type ComputeResult struct {
	PayableDays float64
	PerDayRate  float64
	GrossSalary float64
}

// Compute menurunkan payable days dan gaji kotor dari agregat kehadiran dan
// cuti. Fungsi murni: hasilnya identik untuk input yang sama, sehingga
// regenerasi payroll bersifat idempoten pada field turunannya.
func Compute(in ComputeInput) ComputeResult {
	payableDays := float64(in.PresentDays) +
		0.5*float64(in.HalfDays) +
		float64(in.PaidLeaveDays) -
		float64(in.UnpaidLeaveDays)
	payableDays = math.Max(0, payableDays)

	// Rate dibulatkan hanya untuk disimpan; gross dihitung dari rate mentah
	// supaya sebulan penuh (22 payable days) menghasilkan persis gaji pokok.
	perDayRate := in.BasicSalary / StandardWorkingDays
	grossSalary := round2(perDayRate * payableDays)

	return ComputeResult{
		PayableDays: round2(payableDays),
		PerDayRate:  round2(perDayRate),
		GrossSalary: grossSalary,
	}
}

// MonthSpanDays menghitung jumlah hari inklusif dari rentang cuti yang jatuh
// di dalam bulan (year, month). Rentang yang melewati batas bulan dipotong ke
// batas bulan, supaya cuti lintas bulan tidak dihitung ganda.
func MonthSpanDays(startDate, endDate time.Time, year, month int) int {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	start := startDate
	if start.Before(monthStart) {
		start = monthStart
	}
	end := endDate
	if end.After(monthEnd) {
		end = monthEnd
	}
	if start.After(end) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package attendance

import (
	"errors"
	"strings"

	attendanceerrors "dayflow/internal/attendance/errors"

	"github.com/go-sql-driver/mysql"
)

// Duplicate key pada index unik (employee_id, attendance_date) berarti ada
// check-in lain yang menang balapan; dipetakan ke error precondition yang sama.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		if mysqlErr.Number == 1062 && strings.Contains(mysqlErr.Message, "idx_attendance_employee_date") {
			return attendanceerrors.ErrAlreadyCheckedIn
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate entry") && strings.Contains(errMsg, "idx_attendance_employee_date") {
		return attendanceerrors.ErrAlreadyCheckedIn
	}

	return err
}

package payroll

import (
	"errors"
	"strings"

	payrollerrors "dayflow/internal/payroll/errors"

	"github.com/go-sql-driver/mysql"
)

// Duplicate key pada index unik (employee_id, year, month) berarti dua
// generate untuk periode yang sama balapan; pemanggil cukup mengulang.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		if mysqlErr.Number == 1062 && strings.Contains(mysqlErr.Message, "idx_payroll_employee_period") {
			return payrollerrors.ErrPayrollConflict
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate entry") && strings.Contains(errMsg, "idx_payroll_employee_period") {
		return payrollerrors.ErrPayrollConflict
	}

	return err
}

package payslip_test

import (
	"context"
	"errors"
	"testing"

	"go-payroll/internal/payslip"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	assert.NoError(t, err)
	return db, mock
}

func newPayslipRow(employeeID int64) *payslip.Payslip {
	return &payslip.Payslip{
		ID:             uuid.New(),
		CompanyID:      uuid.New(),
		EmployeeID:     employeeID,
		PayPeriodStart: periodStart,
		PayPeriodEnd:   periodEnd,
		TemplateName:   "Standard",
		NetSalary:      decimal.RequireFromString("72611.00"),
		Rates:          []byte(`{}`),
		Status:         payslip.StatusProcessed,
		CreatedBy:      "user-1",
	}
}

func TestRepository_CreateIfAbsent(t *testing.T) {
	t.Run("inserted", func(t *testing.T) {
		db, mock := newGormMock(t)
		repo := payslip.NewRepository(db)

		mock.ExpectExec(`INSERT INTO "payslips" .* ON CONFLICT \("employee_id","pay_period_start","pay_period_end"\) DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		created, err := repo.CreateIfAbsent(context.Background(), newPayslipRow(1))
		assert.NoError(t, err)
		assert.True(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conflict", func(t *testing.T) {
		db, mock := newGormMock(t)
		repo := payslip.NewRepository(db)

		mock.ExpectExec(`INSERT INTO "payslips"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		created, err := repo.CreateIfAbsent(context.Background(), newPayslipRow(1))
		assert.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("db error", func(t *testing.T) {
		db, mock := newGormMock(t)
		repo := payslip.NewRepository(db)

		mock.ExpectExec(`INSERT INTO "payslips"`).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.CreateIfAbsent(context.Background(), newPayslipRow(1))
		assert.EqualError(t, err, "connection reset")
	})
}

func TestRepository_ExistsForPeriod(t *testing.T) {
	db, mock := newGormMock(t)
	repo := payslip.NewRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "payslips" WHERE .*(employee_id = \$\d.*pay_period_end|pay_period_end = \$\d.*employee_id)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.ExistsForPeriod(context.Background(), 5, periodStart, periodEnd)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByIDAndCompany_NotFound(t *testing.T) {
	db, mock := newGormMock(t)
	repo := payslip.NewRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "payslips" WHERE .*company_id = \$\d`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByIDAndCompany(context.Background(), "c-1", uuid.NewString())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_List(t *testing.T) {
	db, mock := newGormMock(t)
	repo := payslip.NewRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "payslips" WHERE .*EXTRACT\(YEAR FROM pay_period_start\) = \$\d AND EXTRACT\(MONTH FROM pay_period_start\) = \$\d AND status = \$\d`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	mock.ExpectQuery(`SELECT \* FROM "payslips" WHERE .* ORDER BY pay_period_start DESC, employee_id ASC LIMIT \$\d OFFSET \$\d`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "status"}).
			AddRow(uuid.NewString(), 3, "paid"))

	mock.ExpectQuery(`SELECT \* FROM "employees"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name"}).AddRow(3, "Meera Iyer"))

	rows, total, err := repo.List(context.Background(), "c-1", payslip.ListFilter{
		Year: 2025, Month: 1, Status: "paid", Page: 2, PageSize: 5,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(12), total)
	if assert.Len(t, rows, 1) {
		assert.Equal(t, int64(3), rows[0].EmployeeID)
		assert.Equal(t, "Meera Iyer", rows[0].EmployeeName())
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListUnpaged(t *testing.T) {
	db, mock := newGormMock(t)
	repo := payslip.NewRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "payslips"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`ORDER BY pay_period_start DESC, employee_id ASC$`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rows, total, err := repo.List(context.Background(), "c-1", payslip.ListFilter{})

	assert.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkPaid(t *testing.T) {
	var statements []string
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherFunc(
		func(expected, actual string) error {
			statements = append(statements, actual)
			return sqlmock.QueryMatcherRegexp.Match(expected, actual)
		},
	)))
	assert.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)
	repo := payslip.NewRepository(db)

	id := uuid.NewString()
	notes := "bank transfer"
	paid := periodEnd.AddDate(0, 0, 1)

	mock.ExpectExec(`UPDATE "payslips" SET "notes"=\$1,"payment_date"=\$2,"status"=\$3,"updated_at"=\$4 WHERE .*id = \$5 AND status = \$6.*company_id = \$7`).
		WithArgs(notes, paid, payslip.StatusPaid, sqlmock.AnyArg(), id, payslip.StatusProcessed, "c-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "payslips" SET "payment_date"=\$1,"status"=\$2,"updated_at"=\$3 WHERE .*status = \$5`).
		WithArgs(paid, payslip.StatusPaid, sqlmock.AnyArg(), id, payslip.StatusProcessed, "c-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	marked, err := repo.MarkPaid(context.Background(), "c-1", id, paid, &notes)
	assert.NoError(t, err)
	assert.True(t, marked)

	marked, err = repo.MarkPaid(context.Background(), "c-1", id, paid, nil)
	assert.NoError(t, err)
	assert.False(t, marked)

	assert.NoError(t, mock.ExpectationsWereMet())
	for _, stmt := range statements {
		assert.NotContains(t, stmt, "net_salary")
		assert.NotContains(t, stmt, "gross_salary")
		assert.NotContains(t, stmt, "basic_salary")
	}
}

func TestRepository_MarkPaid_Error(t *testing.T) {
	db, mock := newGormMock(t)
	repo := payslip.NewRepository(db)

	mock.ExpectExec(`UPDATE "payslips"`).WillReturnError(errors.New("connection reset"))

	marked, err := repo.MarkPaid(context.Background(), "c-1", uuid.NewString(), periodEnd, nil)
	assert.EqualError(t, err, "connection reset")
	assert.False(t, marked)
}

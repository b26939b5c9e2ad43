package salarytemplate_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/salarytemplate"
	salarytemplateerrors "go-payroll/internal/salarytemplate/errors"
	templateMock "go-payroll/internal/salarytemplate/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   salarytemplate.Service
	repo      *templateMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	rdb, redisMock := redismock.NewClientMock()
	repo := templateMock.NewMockRepository(ctrl)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   salarytemplate.NewService(db, repo, rdb),
		repo:      repo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestSalaryTemplateService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success - omitted rates fall back to defaults", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tpl *salarytemplate.SalaryTemplate) error {
				assert.Equal(t, "Engineering", tpl.Name)
				assert.True(t, tpl.BasicPercent.Equal(decimal.NewFromInt(40)))
				assert.True(t, tpl.HRAPercent.Equal(decimal.NewFromInt(50)))
				assert.True(t, tpl.LTAPercent.Equal(decimal.RequireFromString("8.33")))
				assert.True(t, tpl.ProfessionalTax.Equal(decimal.NewFromInt(200)))
				return nil
			})
		deps.redismock.ExpectDel(salarytemplate.GetTemplateListKey(companyID)).SetVal(1)

		resp, err := deps.service.Create(ctx, companyID, salarytemplate.CreateSalaryTemplateRequest{
			Name:         "  Engineering ",
			BasicPercent: dec("40"),
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "Engineering", resp.Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("negative rate is rejected before any write", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, companyID, salarytemplate.CreateSalaryTemplateRequest{
			Name:       "Broken",
			HRAPercent: dec("-1"),
		})

		assert.True(t, errors.Is(err, salarytemplateerrors.ErrNegativeValue))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate name maps to conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_salary_templates_company_name"})

		_, err := deps.service.Create(ctx, companyID, salarytemplate.CreateSalaryTemplateRequest{Name: "Engineering"})

		assert.True(t, errors.Is(err, salarytemplateerrors.ErrTemplateNameExists))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid company id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, "not-a-uuid", salarytemplate.CreateSalaryTemplateRequest{Name: "X"})
		assert.True(t, errors.Is(err, salarytemplateerrors.ErrInvalidCompanyID))
	})
}

func TestSalaryTemplateService_GetAll(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	key := salarytemplate.GetTemplateListKey(companyID)

	tpl := salarytemplate.SalaryTemplate{
		ID:   uuid.New(),
		Name: "Standard",
	}
	rates := salarytemplate.DefaultRates()
	tpl.BasicPercent = rates.BasicPercent
	tpl.HRAPercent = rates.HRAPercent
	tpl.LTAPercent = rates.LTAPercent
	tpl.PFEmployeePercent = rates.PFEmployeePercent
	tpl.PFEmployerPercent = rates.PFEmployerPercent
	tpl.StandardAllowance = rates.StandardAllowance
	tpl.ProfessionalTax = rates.ProfessionalTax

	want := []salarytemplate.SalaryTemplateResponse{{
		ID:        tpl.ID.String(),
		Name:      "Standard",
		Rates:     tpl.Rates(),
		CreatedAt: time.Time{}.Format(time.RFC3339),
		UpdatedAt: time.Time{}.Format(time.RFC3339),
	}}

	t.Run("cache miss loads from repository and fills cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		payload, _ := json.Marshal(want)
		deps.redismock.ExpectGet(key).RedisNil()
		deps.repo.EXPECT().FindAllByCompany(gomock.Any(), companyID).Return([]salarytemplate.SalaryTemplate{tpl}, nil)
		deps.redismock.ExpectSet(key, payload, 30*time.Minute).SetVal("OK")

		got, err := deps.service.GetAll(ctx, companyID)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("cache hit", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		payload, _ := json.Marshal(want)
		deps.redismock.ExpectGet(key).SetVal(string(payload))

		got, err := deps.service.GetAll(ctx, companyID)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "Standard", got[0].Name)
		assert.True(t, got[0].LTAPercent.Equal(decimal.RequireFromString("8.33")))
	})
}

func TestSalaryTemplateService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	id := uuid.New()

	deps := setupServiceTest(t)
	defer deps.db.Close()

	existing := &salarytemplate.SalaryTemplate{ID: id, Name: "Standard"}
	rates := salarytemplate.DefaultRates()
	existing.BasicPercent = rates.BasicPercent
	existing.HRAPercent = rates.HRAPercent

	expectTx(t, deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), companyID, id.String()).Return(existing, nil)
	deps.repo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tpl *salarytemplate.SalaryTemplate) error {
			assert.True(t, tpl.HRAPercent.Equal(decimal.NewFromInt(40)))
			assert.True(t, tpl.BasicPercent.Equal(decimal.NewFromInt(50)))
			return nil
		})
	deps.redismock.ExpectDel(salarytemplate.GetTemplateListKey(companyID)).SetVal(1)

	resp, err := deps.service.Update(ctx, companyID, id.String(), salarytemplate.UpdateSalaryTemplateRequest{
		HRAPercent: dec("40"),
	})
	assert.NoError(t, err)
	assert.True(t, resp.HRAPercent.Equal(decimal.NewFromInt(40)))
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestSalaryTemplateService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	id := uuid.New().String()

	t.Run("rejected while bound to an active structure", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().IsReferencedByActiveStructure(gomock.Any(), companyID, id).Return(true, nil)

		err := deps.service.Delete(ctx, companyID, id)
		assert.True(t, errors.Is(err, salarytemplateerrors.ErrTemplateInUse))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().IsReferencedByActiveStructure(gomock.Any(), companyID, id).Return(false, nil)
		deps.repo.EXPECT().Delete(gomock.Any(), companyID, id).Return(nil)
		deps.redismock.ExpectDel(salarytemplate.GetTemplateListKey(companyID)).SetVal(1)

		assert.NoError(t, deps.service.Delete(ctx, companyID, id))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		err := deps.service.Delete(ctx, companyID, "abc")
		assert.True(t, errors.Is(err, salarytemplateerrors.ErrInvalidTemplateID))
	})
}

package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/application/usecase"
	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
)

func TestEmployeeCreate_CodigosSecuenciales(t *testing.T) {
	f := newFixture()
	c := f.company(t, "ACME", 100, false)
	ctx := context.Background()

	next, err := f.employees.NextCode(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACME-EMP-000001", next.EmployeeCode)

	first, err := f.employees.Create(ctx, c.ID, dto.CreateEmployeeRequest{Name: " Ana ", Department: "Ops", Phone: " "})
	require.NoError(t, err)
	assert.Equal(t, "ACME-EMP-000001", first.EmployeeCode)
	assert.Equal(t, "Ana", first.Name)
	assert.Nil(t, first.Phone)
	assert.Equal(t, entity.EmployeeStatusActive, first.Status)

	second, err := f.employees.Create(ctx, c.ID, dto.CreateEmployeeRequest{Name: "Beto", Department: "Ops", Phone: "3001234567"})
	require.NoError(t, err)
	assert.Equal(t, "ACME-EMP-000002", second.EmployeeCode)
	require.NotNil(t, second.Phone)
}

func TestEmployeeCreate_PrefijoPorDefecto(t *testing.T) {
	f := newFixture()
	c := f.company(t, "", 100, false)

	e, err := f.employees.Create(context.Background(), c.ID, dto.CreateEmployeeRequest{Name: "Ana", Department: "Ops"})
	require.NoError(t, err)
	assert.Equal(t, "EMP-EMP-000001", e.EmployeeCode)
}

func TestEmployeeCreate_Validaciones(t *testing.T) {
	f := newFixture()
	c := f.company(t, "ACME", 100, false)
	ctx := context.Background()

	_, err := f.employees.Create(ctx, c.ID, dto.CreateEmployeeRequest{Name: "  ", Department: "Ops"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.employees.Create(ctx, c.ID, dto.CreateEmployeeRequest{Name: "Ana"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "department", ve.Field)

	_, err = f.employees.Create(ctx, 999, dto.CreateEmployeeRequest{Name: "Ana", Department: "Ops"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.employees.NextCode(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmployeeCreate_ConcurrenteSinCodigosRepetidos(t *testing.T) {
	f := newFixture()
	c := f.company(t, "ACME", 100, false)
	ctx := context.Background()

	const n = 15
	var wg sync.WaitGroup
	var mu sync.Mutex
	codes := make(map[string]bool)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, err := f.employees.Create(ctx, c.ID, dto.CreateEmployeeRequest{Name: "E", Department: "D"})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			codes[e.EmployeeCode] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, codes, n)
	assert.True(t, codes[usecase.FormatEmployeeCode("ACME", n)])
}

func TestEmployeeDelete_EliminaMarcaciones(t *testing.T) {
	f := newFixture()
	c := f.company(t, "ACME", 100, false)
	e := f.boundEmployee(t, c.ID, "10.0.0.5")
	ctx := context.Background()

	_, err := f.attendance.Submit(ctx, at("10.0.0.5", 5))
	require.NoError(t, err)

	require.NoError(t, f.employees.Delete(ctx, e.ID))

	list, err := f.attendance.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	_, err = f.employees.Get(ctx, e.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.employees.Delete(ctx, e.ID), domain.ErrNotFound)

	// la IP queda libre
	detect, err := f.identity.Detect(ctx, "10.0.0.5")
	require.NoError(t, err)
	assert.False(t, detect.Detected)
}

func TestEmployeeQRCode(t *testing.T) {
	f := newFixture()
	c := f.company(t, "ACME", 100, false)
	e := f.boundEmployee(t, c.ID, "10.0.0.5")
	ctx := context.Background()

	png, err := f.employees.QRCode(ctx, e.ID, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	_, err = f.employees.QRCode(ctx, 999, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

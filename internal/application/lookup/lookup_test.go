package lookup_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-sv/internal/application/lookup"
	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/internal/mocks"
)

const companyID = "c0a80101-0000-4000-8000-000000000001"

// ── Coordinador ───────────────────────────────────────────────────────────────

func TestRun_SupersededResultIsDiscarded(t *testing.T) {
	c := lookup.NewCoordinator(0)
	started := make(chan struct{})
	var wg sync.WaitGroup
	var oldErr error
	var oldCtxErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, oldErr = lookup.Run(context.Background(), c, "s1", func(ctx context.Context) (string, error) {
			close(started)
			<-ctx.Done()
			oldCtxErr = ctx.Err()
			return "resultado viejo", nil
		})
	}()

	<-started
	got, err := lookup.Run(context.Background(), c, "s1", func(ctx context.Context) (string, error) {
		return "resultado nuevo", nil
	})
	wg.Wait()

	require.NoError(t, err)
	assert.Equal(t, "resultado nuevo", got)
	assert.ErrorIs(t, oldErr, domain.ErrStaleLookup, "la respuesta tardía no se aplica")
	assert.ErrorIs(t, oldCtxErr, context.Canceled, "la consulta anterior se cancela")
}

func TestRun_LateResultAfterSlotReuseIsDiscarded(t *testing.T) {
	c := lookup.NewCoordinator(0)
	type outcome struct {
		val string
		err error
	}

	// A queda bloqueada ignorando la cancelación.
	startedA, releaseA := make(chan struct{}), make(chan struct{})
	doneA := make(chan outcome, 1)
	go func() {
		v, err := lookup.Run(context.Background(), c, "s1", func(context.Context) (string, error) {
			close(startedA)
			<-releaseA
			return "A viejo", nil
		})
		doneA <- outcome{v, err}
	}()
	<-startedA

	// B reemplaza a A y termina, liberando la sesión.
	b, err := lookup.Run(context.Background(), c, "s1", func(context.Context) (string, error) {
		return "B", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "B", b)

	// C abre la sesión de nuevo.
	startedC, releaseC := make(chan struct{}), make(chan struct{})
	doneC := make(chan outcome, 1)
	go func() {
		v, err := lookup.Run(context.Background(), c, "s1", func(context.Context) (string, error) {
			close(startedC)
			<-releaseC
			return "C", nil
		})
		doneC <- outcome{v, err}
	}()
	<-startedC

	close(releaseA)
	a := <-doneA
	assert.ErrorIs(t, a.err, domain.ErrStaleLookup, "A fue reemplazada aunque la sesión se haya reabierto")
	assert.Empty(t, a.val)

	close(releaseC)
	got := <-doneC
	require.NoError(t, got.err, "la respuesta tardía de A no debe invalidar a C")
	assert.Equal(t, "C", got.val)
}

func TestRun_DifferentSessionsAreIndependent(t *testing.T) {
	c := lookup.NewCoordinator(0)
	a, errA := lookup.Run(context.Background(), c, "a", func(context.Context) (int, error) { return 1, nil })
	b, errB := lookup.Run(context.Background(), c, "b", func(context.Context) (int, error) { return 2, nil })

	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestRun_DebouncedQuerySupersededBeforeRunning(t *testing.T) {
	c := lookup.NewCoordinator(200 * time.Millisecond)
	calls := make(chan string, 2)
	done := make(chan error, 1)

	go func() {
		_, err := lookup.Run(context.Background(), c, "s1", func(context.Context) (string, error) {
			calls <- "primera"
			return "primera", nil
		})
		done <- err
	}()
	time.Sleep(20 * time.Millisecond)

	got, err := lookup.Run(context.Background(), c, "s1", func(context.Context) (string, error) {
		calls <- "segunda"
		return "segunda", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "segunda", got)
	assert.ErrorIs(t, <-done, domain.ErrStaleLookup)
	close(calls)

	var executed []string
	for name := range calls {
		executed = append(executed, name)
	}
	assert.Equal(t, []string{"segunda"}, executed, "la consulta reemplazada durante la espera nunca se ejecuta")
}

func TestRun_CallerCancellationIsNotStale(t *testing.T) {
	c := lookup.NewCoordinator(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := lookup.Run(ctx, c, "s1", func(context.Context) (int, error) { return 0, nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_PropagatesError(t *testing.T) {
	c := lookup.NewCoordinator(0)
	boom := errors.New("db caída")
	_, err := lookup.Run(context.Background(), c, "s1", func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
}

// ── Casos de uso ──────────────────────────────────────────────────────────────

func TestCounterparties_SearchesByDigits(t *testing.T) {
	repo := new(mocks.MockCounterpartyRepo)
	repo.On("SearchByIdentifier", mock.Anything, companyID, "0614", 10).Return([]*entity.Counterparty{
		{ID: "cp-1", Name: "Ferretería La Esquina", IDType: "36", IDNumber: "06142901861013", NRC: "2345678"},
	}, nil)

	uc := lookup.NewLookupUseCase(repo, new(mocks.MockItemRepo), lookup.NewCoordinator(0), 0)
	got, err := uc.Counterparties(context.Background(), companyID, "user-1", "06-14")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Ferretería La Esquina", got[0].Name)
	repo.AssertExpectations(t)
}

func TestCounterparties_ShortQuerySkipsRepository(t *testing.T) {
	repo := new(mocks.MockCounterpartyRepo)
	uc := lookup.NewLookupUseCase(repo, new(mocks.MockItemRepo), lookup.NewCoordinator(0), 0)

	got, err := uc.Counterparties(context.Background(), companyID, "user-1", "0")
	require.NoError(t, err)
	assert.Empty(t, got)
	repo.AssertNotCalled(t, "SearchByIdentifier", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestItems_AccentInsensitiveKey(t *testing.T) {
	items := new(mocks.MockItemRepo)
	items.On("SearchByText", mock.Anything, companyID, "cafe molido", 5).Return([]*entity.CatalogItem{
		{ID: "it-1", Code: "CAF-01", Description: "Café molido 400 g", Kind: entity.LineTaxable},
	}, nil)

	uc := lookup.NewLookupUseCase(new(mocks.MockCounterpartyRepo), items, lookup.NewCoordinator(0), 5)
	got, err := uc.Items(context.Background(), companyID, "user-1", "  CAFÉ   Molido ")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "TAXABLE", got[0].Kind)
	items.AssertExpectations(t)
}

package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/facturacion-sv/internal/application/dto"
	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/dte"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/internal/domain/repository"
	"github.com/jhoicas/facturacion-sv/pkg/mh"
)

// InvalidateDocumentUseCase transmite el evento de invalidación de un documento aceptado.
type InvalidateDocumentUseCase struct {
	docRepo     repository.DocumentRepository
	companyRepo repository.CompanyRepository
	service     SubmissionService
	guard       *InFlightGuard
	timeout     time.Duration
	log         zerolog.Logger
	now         func() time.Time
}

// NewInvalidateDocumentUseCase construye el caso de uso.
func NewInvalidateDocumentUseCase(
	docRepo repository.DocumentRepository,
	companyRepo repository.CompanyRepository,
	service SubmissionService,
	guard *InFlightGuard,
	timeout time.Duration,
	log zerolog.Logger,
) *InvalidateDocumentUseCase {
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}
	if guard == nil {
		guard = NewInFlightGuard()
	}
	return &InvalidateDocumentUseCase{
		docRepo:     docRepo,
		companyRepo: companyRepo,
		service:     service,
		guard:       guard,
		timeout:     timeout,
		log:         log,
		now:         time.Now,
	}
}

// Invalidate valida la solicitud localmente antes de contactar al servicio. Solo una
// confirmación del servicio mueve el documento a INVALIDATED.
func (uc *InvalidateDocumentUseCase) Invalidate(ctx context.Context, companyID, documentID string, req dto.InvalidateDocumentRequest) (*dto.DocumentResponse, error) {
	release, ok := uc.guard.TryAcquire(documentID)
	if !ok {
		return nil, domain.ErrSubmissionInFlight
	}
	defer release()

	doc, err := loadOwned(ctx, uc.docRepo, companyID, documentID)
	if err != nil {
		return nil, err
	}
	if doc.State == entity.StateInvalidated {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, doc.State, entity.StateInvalidated)
	}

	request := toInvalidationRequest(doc.ID, req)
	if err := dte.ValidateInvalidation(doc, request); err != nil {
		return nil, err
	}

	company, err := uc.companyRepo.GetProfile(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("perfil de empresa: %w", err)
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %s: %w", companyID, domain.ErrNotFound)
	}

	ev := InvalidationEvent{Code: mh.NewGenerationCode(), Request: request, IssuedAt: uc.now()}
	log := uc.log.With().
		Str("document_id", doc.ID).
		Str("generation_code", doc.GenerationCode).
		Str("event_code", ev.Code).
		Logger()

	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.timeout)
	defer cancel()

	out, err := uc.service.Invalidate(sctx, company, doc, ev)
	if err != nil {
		if errors.Is(sctx.Err(), context.DeadlineExceeded) && !domain.IsRetryable(err) {
			err = &domain.NetworkError{Op: "invalidación", Timeout: true, Err: err}
		}
		log.Warn().Err(err).Msg("invalidación sin respuesta definitiva")
		return nil, err
	}
	if out == nil || !out.Accepted {
		reason := "el servicio no confirmó la invalidación"
		if out != nil && out.Rejection != nil {
			reason = fmt.Sprintf("rechazada por el servicio (%s): %s", out.Rejection.Code, out.Rejection.Description)
			if len(out.Rejection.Observations) > 0 {
				reason += " [" + strings.Join(out.Rejection.Observations, "; ") + "]"
			}
		}
		log.Warn().Str("status", string(doc.State)).Msg(reason)
		return nil, &domain.InvalidationError{Reason: reason}
	}

	at := out.ProcessedAt
	if at.IsZero() {
		at = uc.now()
	}
	record := entity.InvalidationRecord{
		Request:        request,
		GenerationCode: ev.Code,
		ReceptionSeal:  out.ReceptionSeal,
		InvalidatedAt:  at,
	}
	if err := dte.Invalidate(doc, record, at); err != nil {
		return nil, err
	}
	if err := uc.docRepo.Update(context.WithoutCancel(ctx), doc); err != nil {
		log.Error().Err(err).Msg("no se pudo persistir la invalidación")
		return nil, err
	}

	log.Info().Str("status", string(doc.State)).Msg("documento invalidado")
	return ToDocumentResponse(doc), nil
}

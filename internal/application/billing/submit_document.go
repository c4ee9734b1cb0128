package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/facturacion-sv/internal/application/dto"
	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/dte"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/internal/domain/repository"
)

// DefaultSubmitTimeout límite de un intento de envío.
const DefaultSubmitTimeout = 30 * time.Second

// submitLeaseMargin tiempo extra del lease sobre el límite del intento, para persistir el resultado.
const submitLeaseMargin = 10 * time.Second

// SubmitDocumentUseCase orquesta el envío de un documento al servicio de recepción:
//
//	GENERATED → SUBMITTED → ACCEPTED | REJECTED
//
// Un documento SUBMITTED sin intento activo (falla de red o tiempo agotado previo)
// se reenvía con el mismo código de generación.
type SubmitDocumentUseCase struct {
	docRepo     repository.DocumentRepository
	companyRepo repository.CompanyRepository
	service     SubmissionService
	guard       *InFlightGuard
	timeout     time.Duration
	log         zerolog.Logger
	now         func() time.Time
}

// NewSubmitDocumentUseCase construye el caso de uso. timeout <= 0 usa DefaultSubmitTimeout.
// El guard se comparte con la invalidación para que un documento no tenga dos operaciones activas.
func NewSubmitDocumentUseCase(
	docRepo repository.DocumentRepository,
	companyRepo repository.CompanyRepository,
	service SubmissionService,
	guard *InFlightGuard,
	timeout time.Duration,
	log zerolog.Logger,
) *SubmitDocumentUseCase {
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}
	if guard == nil {
		guard = NewInFlightGuard()
	}
	return &SubmitDocumentUseCase{
		docRepo:     docRepo,
		companyRepo: companyRepo,
		service:     service,
		guard:       guard,
		timeout:     timeout,
		log:         log,
		now:         time.Now,
	}
}

// Submit envía (o reenvía) el documento y persiste el resultado.
//
// Errores:
//   - domain.ErrSubmissionInFlight si ya hay un intento activo para el documento, en este
//     proceso o en otra instancia (lease vigente).
//   - *domain.NetworkError (reintentable) si no hubo respuesta; el documento queda SUBMITTED.
//   - domain.ErrInvalidTransition si el documento ya tiene un resultado definitivo.
func (uc *SubmitDocumentUseCase) Submit(ctx context.Context, companyID, documentID string) (*dto.DocumentResponse, error) {
	release, ok := uc.guard.TryAcquire(documentID)
	if !ok {
		return nil, domain.ErrSubmissionInFlight
	}
	defer release()

	doc, err := loadOwned(ctx, uc.docRepo, companyID, documentID)
	if err != nil {
		return nil, err
	}
	log := uc.log.With().
		Str("document_id", doc.ID).
		Str("generation_code", doc.GenerationCode).
		Logger()

	switch doc.State {
	case entity.StateGenerated, entity.StateSubmitted:
	default:
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, doc.State, entity.StateSubmitted)
	}

	company, err := uc.companyRepo.GetProfile(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("perfil de empresa: %w", err)
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %s: %w", companyID, domain.ErrNotFound)
	}

	// El guard solo cubre este proceso; el lease en la base cubre a las demás instancias,
	// tanto en el primer envío como en un reintento de un documento SUBMITTED.
	claimed, err := uc.docRepo.ClaimSubmission(ctx, doc.ID, doc.State, uc.timeout+submitLeaseMargin)
	if err != nil {
		return nil, fmt.Errorf("marcar enviado: %w", err)
	}
	if !claimed {
		return nil, domain.ErrSubmissionInFlight
	}
	releaseLease := func() {
		if err := uc.docRepo.ReleaseSubmission(context.WithoutCancel(ctx), doc.ID); err != nil {
			log.Warn().Err(err).Msg("no se pudo soltar el lease de envío")
		}
	}
	if doc.State == entity.StateGenerated {
		if err := dte.MarkSubmitted(doc, uc.now()); err != nil {
			releaseLease()
			return nil, err
		}
	} else {
		log.Info().Msg("reintento de envío pendiente")
	}

	// Una vez SUBMITTED el intento no se abandona por cancelación del llamador;
	// solo lo corta el tiempo límite.
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.timeout)
	defer cancel()

	out, err := uc.service.Submit(sctx, company, doc)
	if err != nil {
		if errors.Is(sctx.Err(), context.DeadlineExceeded) && !domain.IsRetryable(err) {
			err = &domain.NetworkError{Op: "recepción", Timeout: true, Err: err}
		}
		log.Warn().Err(err).Bool("retryable", domain.IsRetryable(err)).
			Str("status", string(entity.StateSubmitted)).
			Msg("envío sin respuesta definitiva")
		releaseLease()
		return nil, err
	}
	if out == nil {
		releaseLease()
		return nil, fmt.Errorf("%w: respuesta vacía", domain.ErrSubmissionFailed)
	}

	at := out.ProcessedAt
	if at.IsZero() {
		at = uc.now()
	}
	if out.Accepted {
		err = dte.Accept(doc, out.ReceptionSeal, at)
	} else {
		detail := entity.RejectionDetail{}
		if out.Rejection != nil {
			detail = *out.Rejection
		}
		err = dte.Reject(doc, detail, at)
	}
	if err != nil {
		return nil, err
	}

	if err := uc.docRepo.Update(context.WithoutCancel(ctx), doc); err != nil {
		log.Error().Err(err).Str("status", string(doc.State)).Msg("no se pudo persistir el resultado del envío")
		return nil, err
	}

	if doc.Rejection != nil {
		log.Warn().Str("status", string(doc.State)).
			Str("code", doc.Rejection.Code).
			Strs("observations", doc.Rejection.Observations).
			Msg("documento rechazado")
	} else {
		log.Info().Str("status", string(doc.State)).Msg("documento aceptado")
	}

	return ToDocumentResponse(doc), nil
}

package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"dashdrop/internal/driver-service/core/domain/dto"
	"dashdrop/internal/driver-service/core/domain/model"
	"dashdrop/internal/driver-service/core/myerrors"
	"dashdrop/internal/driver-service/core/ports/driven"
	"dashdrop/internal/mylogger"
)

// VerificationService handles the driver-initiated half of the verification
// lifecycle: document submission and the implicit move into review.
type VerificationService struct {
	repositories driven.IDriverRepository
	files        driven.IFileStore
	log          mylogger.Logger
}

func NewVerificationService(repositories driven.IDriverRepository, files driven.IFileStore, log mylogger.Logger) *VerificationService {
	return &VerificationService{repositories: repositories, files: files, log: log}
}

// SubmitDocuments stores every payload that decodes as a supported image or
// PDF and merges the resulting URLs into the driver's document map. Unsupported
// payloads are skipped rather than failing the whole submission. The profile
// enters review only once all five slots are populated.
func (vs *VerificationService) SubmitDocuments(ctx context.Context, driverID string, uploads []dto.DocumentUpload) (dto.DocumentsResponseDto, error) {
	log := vs.log.Action("SubmitDocuments")

	if len(uploads) == 0 {
		return dto.DocumentsResponseDto{}, fmt.Errorf("%w: no documents submitted", myerrors.ErrValidation)
	}

	if _, err := vs.repositories.GetDriver(ctx, driverID); err != nil {
		return dto.DocumentsResponseDto{}, err
	}

	accepted := make(map[string]string)
	var skipped []string
	for _, up := range uploads {
		if !model.ValidDocumentSlot(up.Slot) {
			return dto.DocumentsResponseDto{}, fmt.Errorf("%w: unknown document slot %q", myerrors.ErrValidation, up.Slot)
		}

		contentType := http.DetectContentType(up.Data)
		if !supportedDocumentType(contentType) {
			log.Warn("skipping unsupported document payload", "driver_id", driverID, "slot", up.Slot, "content_type", contentType)
			skipped = append(skipped, up.Slot)
			continue
		}

		key := fmt.Sprintf("%s/%s", driverID, up.Slot)
		url, err := vs.files.Save(ctx, key, up.Data, contentType)
		if err != nil {
			log.Error("cannot store document", err, "driver_id", driverID, "slot", up.Slot)
			return dto.DocumentsResponseDto{}, err
		}
		accepted[up.Slot] = url
	}

	if len(accepted) == 0 {
		return dto.DocumentsResponseDto{}, myerrors.ErrNoUsableDocuments
	}

	merged, err := vs.repositories.MergeDocuments(ctx, driverID, accepted)
	if err != nil {
		return dto.DocumentsResponseDto{}, err
	}

	status := merged.VerificationStatus
	if model.HasAllDocuments(merged.Documents) && status != model.VerificationPendingVerification && status != model.VerificationVerified {
		if err := vs.repositories.SetVerificationStatus(ctx, driverID, model.VerificationPendingVerification); err != nil {
			return dto.DocumentsResponseDto{}, err
		}
		status = model.VerificationPendingVerification
		log.Info("driver entered verification review", "driver_id", driverID)
	}

	message := "Documents stored"
	if status == model.VerificationPendingVerification {
		message = "Documents stored, profile is under review"
	} else if missing := missingSlots(merged.Documents); len(missing) > 0 {
		message = fmt.Sprintf("Documents stored, still missing: %s", strings.Join(missing, ", "))
	}

	log.Info("documents submitted", "driver_id", driverID, "accepted", len(accepted), "skipped", len(skipped))
	return dto.DocumentsResponseDto{
		DriverId:           driverID,
		Documents:          merged.Documents,
		Skipped:            skipped,
		VerificationStatus: status,
		Message:            message,
	}, nil
}

func supportedDocumentType(contentType string) bool {
	if strings.HasPrefix(contentType, "image/") {
		return true
	}
	return contentType == "application/pdf"
}

func missingSlots(docs map[string]string) []string {
	var missing []string
	for _, slot := range model.DocumentSlots {
		if docs[slot] == "" {
			missing = append(missing, slot)
		}
	}
	return missing
}

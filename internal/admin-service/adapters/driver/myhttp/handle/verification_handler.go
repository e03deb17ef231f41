package handle

import (
	"encoding/json"
	"fmt"
	"net/http"

	"dashdrop/internal/admin-service/adapters/driver/myhttp/middleware"
	"dashdrop/internal/admin-service/core/domain/dto"
	"dashdrop/internal/admin-service/core/domain/model"
	"dashdrop/internal/admin-service/core/myerrors"
	"dashdrop/internal/admin-service/core/ports/driver"
	"dashdrop/internal/mylogger"
)

type VerificationHandler struct {
	svc driver.IVerificationService
	log mylogger.Logger
}

func NewVerificationHandler(svc driver.IVerificationService, log mylogger.Logger) *VerificationHandler {
	return &VerificationHandler{
		svc: svc,
		log: log,
	}
}

func (vh *VerificationHandler) Decide() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := vh.log.Action("decideVerificationHandler")

		driverID := r.PathValue("driver_id")
		actor, _ := middleware.ActorFrom(r.Context())

		var req dto.DecideRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, fmt.Errorf("invalid json body"))
			return
		}
		if req.Status == nil {
			jsonError(w, http.StatusBadRequest, fmt.Errorf("%w: status is required", myerrors.ErrValidation))
			return
		}

		decision := model.Decision{
			Status:  *req.Status,
			AdminID: actor.UserID,
		}
		if req.Notes != nil {
			decision.Notes = *req.Notes
		}

		updated, err := vh.svc.Decide(r.Context(), driverID, decision)
		if err != nil {
			log.Error("cannot store verification decision", err, "driver_id", driverID)
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, dto.FromDriverVerification(updated))
	}
}

func (vh *VerificationHandler) Reconsider() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := vh.log.Action("reconsiderVerificationHandler")

		driverID := r.PathValue("driver_id")

		updated, err := vh.svc.Reconsider(r.Context(), driverID)
		if err != nil {
			log.Error("cannot reconsider driver", err, "driver_id", driverID)
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, dto.FromDriverVerification(updated))
	}
}

func (vh *VerificationHandler) ListPending() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := vh.log.Action("listPendingHandler")

		drivers, err := vh.svc.ListPending(r.Context())
		if err != nil {
			log.Error("cannot list pending drivers", err)
			serviceError(w, err)
			return
		}

		resp := dto.PendingListResponse{
			Total:   len(drivers),
			Drivers: make([]dto.VerificationResponse, 0, len(drivers)),
		}
		for _, d := range drivers {
			resp.Drivers = append(resp.Drivers, dto.FromDriverVerification(d))
		}

		jsonResponse(w, http.StatusOK, resp)
	}
}

func (vh *VerificationHandler) GetDriver() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := vh.log.Action("getDriverHandler")

		driverID := r.PathValue("driver_id")

		d, err := vh.svc.GetDriver(r.Context(), driverID)
		if err != nil {
			log.Error("cannot get driver", err, "driver_id", driverID)
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, dto.FromDriverVerification(d))
	}
}

func (vh *VerificationHandler) DeleteDriver() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := vh.log.Action("deleteDriverHandler")

		driverID := r.PathValue("driver_id")

		if err := vh.svc.DeleteDriver(r.Context(), driverID); err != nil {
			log.Error("cannot delete driver", err, "driver_id", driverID)
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusNoContent, nil)
	}
}

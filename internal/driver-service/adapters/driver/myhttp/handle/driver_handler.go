package handle

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"dashdrop/internal/driver-service/adapters/driver/myhttp/middleware"
	"dashdrop/internal/driver-service/core/domain/dto"
	"dashdrop/internal/driver-service/core/domain/model"
	"dashdrop/internal/driver-service/core/ports/driver"
	"dashdrop/internal/mylogger"
)

const maxDocumentUpload = 10 << 20 // per request

type DriverHandler struct {
	driverService       driver.IDriverService
	verificationService driver.IVerificationService
	log                 mylogger.Logger
}

func NewDriverHandler(ds driver.IDriverService, vs driver.IVerificationService, log mylogger.Logger) *DriverHandler {
	return &DriverHandler{
		driverService:       ds,
		verificationService: vs,
		log:                 log,
	}
}

func (dh *DriverHandler) GetDriver() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID := r.PathValue("driver_id")

		res, err := dh.driverService.GetDriver(r.Context(), driverID)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (dh *DriverHandler) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID := r.PathValue("driver_id")
		if !ownsDriver(r, driverID) {
			jsonError(w, http.StatusForbidden, errors.New("not your driver profile"))
			return
		}

		req := dto.ProfileUpdateRequestDto{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := dh.driverService.UpdateProfile(r.Context(), driverID, req)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (dh *DriverHandler) UpdateLocation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID := r.PathValue("driver_id")
		if !ownsDriver(r, driverID) {
			jsonError(w, http.StatusForbidden, errors.New("not your driver profile"))
			return
		}

		req := dto.LocationUpdateRequestDto{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}
		if req.Longitude == nil || req.Latitude == nil {
			jsonError(w, http.StatusBadRequest, errors.New("longitude and latitude are required"))
			return
		}

		if err := dh.driverService.UpdateLocation(r.Context(), driverID, *req.Longitude, *req.Latitude); err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, map[string]string{"message": "location updated"})
	}
}

func (dh *DriverHandler) UpdateAvailability() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID := r.PathValue("driver_id")
		if !ownsDriver(r, driverID) {
			jsonError(w, http.StatusForbidden, errors.New("not your driver profile"))
			return
		}

		req := dto.AvailabilityRequestDto{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}
		if req.IsAvailable == nil {
			jsonError(w, http.StatusBadRequest, errors.New("is_available is required"))
			return
		}

		res, err := dh.driverService.SetAvailability(r.Context(), driverID, *req.IsAvailable)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

// SubmitDocuments accepts a multipart form with any subset of the five
// document slots as file fields.
func (dh *DriverHandler) SubmitDocuments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID := r.PathValue("driver_id")
		if !ownsDriver(r, driverID) {
			jsonError(w, http.StatusForbidden, errors.New("not your driver profile"))
			return
		}

		if err := r.ParseMultipartForm(maxDocumentUpload); err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		var uploads []dto.DocumentUpload
		for _, slot := range model.DocumentSlots {
			headers := r.MultipartForm.File[slot]
			if len(headers) == 0 {
				continue
			}

			file, err := headers[0].Open()
			if err != nil {
				jsonError(w, http.StatusBadRequest, err)
				return
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				jsonError(w, http.StatusBadRequest, err)
				return
			}

			uploads = append(uploads, dto.DocumentUpload{
				Slot:     slot,
				Filename: headers[0].Filename,
				Data:     data,
			})
		}

		res, err := dh.verificationService.SubmitDocuments(r.Context(), driverID, uploads)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

// ownsDriver allows the driver itself or an admin actor.
func ownsDriver(r *http.Request, driverID string) bool {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		return false
	}
	if actor.Role == "ADMIN" {
		return true
	}
	return actor.Role == "DRIVER" && actor.DriverID == driverID
}

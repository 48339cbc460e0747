package medicalrecords

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-adoption/internal/domain/workflow"
	"pet-adoption/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medical-records", func(mr chi.Router) {
		mr.Post("/", createRecordHandler(svc))
		mr.Get("/", searchRecordsHandler(svc))
		mr.Get("/pet/{petID}", listPetRecordsHandler(svc))
		mr.Get("/pet/{petID}/vaccinations", listVaccinationsHandler(svc))
		mr.Get("/{recordID}", getRecordHandler(svc))
		mr.Put("/{recordID}", updateRecordHandler(svc))
		mr.Post("/{recordID}/start", simpleTransitionHandler(svc.Start))
		mr.Post("/{recordID}/reschedule", simpleTransitionHandler(svc.Reschedule))
		mr.Post("/{recordID}/complete", notesTransitionHandler(svc.Complete))
		mr.Post("/{recordID}/cancel", notesTransitionHandler(svc.Cancel))
		mr.Post("/{recordID}/follow-up", followUpHandler(svc))
		mr.Post("/{recordID}/void", notesTransitionHandler(svc.Void))
		mr.Patch("/{recordID}/status", updateStatusHandler(svc))
	})
}

// detailsRequest: campos descriptivos del registro. Fechas en YYYY-MM-DD o RFC3339.
type detailsRequest struct {
	RecordType       string   `json:"record_type" enums:"VACCINATION,CHECKUP,SURGERY,DENTAL,EMERGENCY,ILLNESS,INJURY,SPAY_NEUTER,MICROCHIP,MEDICATION,BEHAVIORAL,OTHER"`
	Description      string   `json:"description"`
	VeterinarianName string   `json:"veterinarian_name"`
	ClinicName       string   `json:"clinic_name"`
	Medication       string   `json:"medication_prescribed"`
	Dosage           string   `json:"dosage_instructions"`
	WeightKg         *float64 `json:"weight_kg"`
	TemperatureC     *float64 `json:"temperature_c"`
	FollowUpDate     string   `json:"follow_up_date"`
	CostCents        int64    `json:"cost_cents"`
	Notes            string   `json:"notes"`
}

type createRecordRequest struct {
	PetID           string `json:"pet_id"`
	RecordDate      string `json:"record_date"`                                  // opcional, hoy por defecto
	TreatmentStatus string `json:"treatment_status" enums:"SCHEDULED,COMPLETED"` // opcional, COMPLETED por defecto
	detailsRequest
}

type notesRequest struct {
	Notes string `json:"notes"`
}

type followUpRequest struct {
	FollowUpDate string `json:"follow_up_date"`
	Notes        string `json:"notes"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type recordResponse struct {
	ID                   string          `json:"id"`
	PetID                string          `json:"pet_id"`
	RecordType           RecordType      `json:"record_type"`
	RecordDate           string          `json:"record_date"`
	Description          string          `json:"description"`
	VeterinarianName     string          `json:"veterinarian_name,omitempty"`
	ClinicName           string          `json:"clinic_name,omitempty"`
	MedicationPrescribed string          `json:"medication_prescribed,omitempty"`
	DosageInstructions   string          `json:"dosage_instructions,omitempty"`
	WeightKg             *float64        `json:"weight_kg,omitempty"`
	TemperatureC         *float64        `json:"temperature_c,omitempty"`
	FollowUpRequired     bool            `json:"follow_up_required"`
	FollowUpDate         string          `json:"follow_up_date,omitempty"`
	CostCents            int64           `json:"cost_cents"`
	Notes                string          `json:"notes,omitempty"`
	TreatmentStatus      TreatmentStatus `json:"treatment_status"`
	Voided               bool            `json:"voided"`
	CreatedBy            string          `json:"created_by,omitempty"`
	Version              int64           `json:"version"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// createRecordHandler godoc
// @Summary Registrar historial médico
// @Description Alta de un registro médico (rol admin). Nace COMPLETED salvo que se pida SCHEDULED.
// @Tags medical-records
// @Accept json
// @Produce json
// @Param payload body createRecordRequest true "Datos del registro"
// @Success 201 {object} recordResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "pet not found"
// @Router /medical-records [post]
func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := httpx.RequireAdmin(w, r)
		if !ok {
			return
		}
		var req createRecordRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		date, err := parseDate("record_date", req.RecordDate)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		d, err := req.details()
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}

		var recDate time.Time
		if date != nil {
			recDate = *date
		}
		rec, err := svc.Create(r.Context(), actorID, CreateInput{
			PetID:      req.PetID,
			RecordDate: recDate,
			Status:     TreatmentStatus(strings.ToUpper(strings.TrimSpace(req.TreatmentStatus))),
			Details:    d,
		})
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

// searchRecordsHandler godoc
// @Summary Buscar registros médicos (admin)
// @Description Filtra por veterinario, tipo o antigüedad en días.
// @Tags medical-records
// @Produce json
// @Param veterinarian query string false "Contiene, sin distinguir mayúsculas"
// @Param type query string false "Tipo de registro"
// @Param days query int false "Solo registros de los últimos N días"
// @Param limit query int false "1-200"
// @Success 200 {array} recordResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /medical-records [get]
func searchRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := httpx.RequireAdmin(w, r); !ok {
			return
		}
		q := r.URL.Query()
		limit := httpx.QueryInt(r, "limit", defaultLimit)

		var (
			items []Record
			err   error
		)
		if days := httpx.QueryInt(r, "days", 0); days > 0 {
			items, err = svc.ListRecent(r.Context(), days, limit)
		} else {
			f := ListFilter{Veterinarian: q.Get("veterinarian"), Limit: limit}
			if t := strings.TrimSpace(q.Get("type")); t != "" {
				f.Types = []RecordType{RecordType(strings.ToUpper(t))}
			}
			items, err = svc.List(r.Context(), f)
		}
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		writeList(w, items)
	}
}

// listPetRecordsHandler godoc
// @Summary Historial médico de una mascota
// @Description Más reciente primero. Permite filtrar por tipos, rango de fechas y texto.
// @Tags medical-records
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param types query string false "CSV de tipos (ej: VACCINATION,CHECKUP)"
// @Param from query string false "Fecha mínima (YYYY-MM-DD)"
// @Param to query string false "Fecha máxima (YYYY-MM-DD)"
// @Param q query string false "Texto libre en descripción, notas o medicación"
// @Param include_voided query bool false "Incluir anulados"
// @Param limit query int false "1-200"
// @Success 200 {array} recordResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /medical-records/pet/{petID} [get]
func listPetRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := httpx.RequireUser(w, r); !ok {
			return
		}
		f, err := parseListFilter(r)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		items, err := svc.ListByPet(r.Context(), chi.URLParam(r, "petID"), f)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		writeList(w, items)
	}
}

// listVaccinationsHandler godoc
// @Summary Vacunas de una mascota
// @Tags medical-records
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} recordResponse
// @Router /medical-records/pet/{petID}/vaccinations [get]
func listVaccinationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := httpx.RequireUser(w, r); !ok {
			return
		}
		items, err := svc.ListVaccinations(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		writeList(w, items)
	}
}

// getRecordHandler godoc
// @Summary Ver registro médico
// @Tags medical-records
// @Produce json
// @Param recordID path string true "ID del registro"
// @Success 200 {object} recordResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /medical-records/{recordID} [get]
func getRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := httpx.RequireUser(w, r); !ok {
			return
		}
		rec, err := svc.GetByID(r.Context(), chi.URLParam(r, "recordID"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// updateRecordHandler godoc
// @Summary Editar registro médico (admin)
// @Description Reemplaza los campos descriptivos. El estado del tratamiento no cambia.
// @Tags medical-records
// @Accept json
// @Produce json
// @Param recordID path string true "ID del registro"
// @Param payload body detailsRequest true "Campos del registro"
// @Success 200 {object} recordResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse "anulado o modificado en paralelo"
// @Router /medical-records/{recordID} [put]
func updateRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := httpx.RequireAdmin(w, r); !ok {
			return
		}
		var req detailsRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		d, err := req.details()
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		rec, err := svc.Update(r.Context(), chi.URLParam(r, "recordID"), d)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// simpleTransitionHandler godoc
// @Summary Iniciar o reprogramar tratamiento (admin)
// @Tags medical-records
// @Produce json
// @Param recordID path string true "ID del registro"
// @Success 200 {object} recordResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /medical-records/{recordID}/start [post]
// @Router /medical-records/{recordID}/reschedule [post]
func simpleTransitionHandler(fn func(ctx context.Context, id, actorID string) (Record, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := httpx.RequireAdmin(w, r)
		if !ok {
			return
		}
		rec, err := fn(r.Context(), chi.URLParam(r, "recordID"), actorID)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// notesTransitionHandler godoc
// @Summary Completar, cancelar o anular (admin)
// @Tags medical-records
// @Accept json
// @Produce json
// @Param recordID path string true "ID del registro"
// @Param payload body notesRequest false "Notas o motivo"
// @Success 200 {object} recordResponse
// @Failure 409 {object} httpx.ErrorResponse "registro anulado"
// @Failure 422 {object} httpx.ErrorResponse
// @Router /medical-records/{recordID}/complete [post]
// @Router /medical-records/{recordID}/cancel [post]
// @Router /medical-records/{recordID}/void [post]
func notesTransitionHandler(fn func(ctx context.Context, id, actorID, notes string) (Record, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := httpx.RequireAdmin(w, r)
		if !ok {
			return
		}
		var req notesRequest
		if r.ContentLength != 0 {
			if err := httpx.DecodeJSON(r, &req); err != nil {
				httpx.WriteDomainError(w, err)
				return
			}
		}
		rec, err := fn(r.Context(), chi.URLParam(r, "recordID"), actorID, req.Notes)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// followUpHandler godoc
// @Summary Marcar control pendiente (admin)
// @Tags medical-records
// @Accept json
// @Produce json
// @Param recordID path string true "ID del registro"
// @Param payload body followUpRequest true "Fecha del control (obligatoria)"
// @Success 200 {object} recordResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /medical-records/{recordID}/follow-up [post]
func followUpHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := httpx.RequireAdmin(w, r)
		if !ok {
			return
		}
		var req followUpRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		date, err := parseDate("follow_up_date", req.FollowUpDate)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		var at time.Time
		if date != nil {
			at = *date
		}
		rec, err := svc.FlagFollowUp(r.Context(), chi.URLParam(r, "recordID"), actorID, at, req.Notes)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// updateStatusHandler godoc
// @Summary Cambiar estado del tratamiento (admin)
// @Tags medical-records
// @Accept json
// @Produce json
// @Param recordID path string true "ID del registro"
// @Param payload body updateStatusRequest true "Nuevo estado"
// @Success 200 {object} recordResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /medical-records/{recordID}/status [patch]
func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := httpx.RequireAdmin(w, r)
		if !ok {
			return
		}
		var req updateStatusRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		status := TreatmentStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
		rec, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "recordID"), status, req.Notes, actorID)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func (req detailsRequest) details() (Details, error) {
	fu, err := parseDate("follow_up_date", req.FollowUpDate)
	if err != nil {
		return Details{}, err
	}
	return Details{
		Type:             RecordType(req.RecordType),
		Description:      req.Description,
		VeterinarianName: req.VeterinarianName,
		ClinicName:       req.ClinicName,
		Medication:       Medication{Name: req.Medication, Dosage: req.Dosage},
		Vitals:           Vitals{WeightKg: req.WeightKg, TemperatureC: req.TemperatureC},
		FollowUpDate:     fu,
		CostCents:        req.CostCents,
		Notes:            req.Notes,
	}, nil
}

// parseDate acepta YYYY-MM-DD o RFC3339. Vacío => nil.
func parseDate(field, v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, workflow.Invalid(field, "must be YYYY-MM-DD or RFC3339")
	}
	return &t, nil
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()
	f := ListFilter{
		Query: q.Get("q"),
		Limit: httpx.QueryInt(r, "limit", defaultLimit),
	}

	// types=VACCINATION,CHECKUP
	if v := strings.TrimSpace(q.Get("types")); v != "" {
		for _, p := range strings.Split(v, ",") {
			if t := strings.ToUpper(strings.TrimSpace(p)); t != "" {
				f.Types = append(f.Types, RecordType(t))
			}
		}
	}

	var err error
	if f.From, err = parseDate("from", q.Get("from")); err != nil {
		return ListFilter{}, err
	}
	if f.To, err = parseDate("to", q.Get("to")); err != nil {
		return ListFilter{}, err
	}
	if v := strings.TrimSpace(q.Get("include_voided")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return ListFilter{}, workflow.Invalid("include_voided", "must be a boolean")
		}
		f.IncludeVoided = b
	}
	return f, nil
}

func writeList(w http.ResponseWriter, items []Record) {
	out := make([]recordResponse, 0, len(items))
	for _, rec := range items {
		out = append(out, toRecordResponse(rec))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func toRecordResponse(rec Record) recordResponse {
	out := recordResponse{
		ID:                   rec.ID,
		PetID:                rec.PetID,
		RecordType:           rec.Type,
		RecordDate:           rec.RecordDate.Format(time.DateOnly),
		Description:          rec.Description,
		VeterinarianName:     rec.VeterinarianName,
		ClinicName:           rec.ClinicName,
		MedicationPrescribed: rec.Medication.Name,
		DosageInstructions:   rec.Medication.Dosage,
		WeightKg:             rec.Vitals.WeightKg,
		TemperatureC:         rec.Vitals.TemperatureC,
		FollowUpRequired:     rec.Status == StatusFollowUpNeeded,
		CostCents:            rec.CostCents,
		Notes:                rec.Notes,
		TreatmentStatus:      rec.Status,
		Voided:               rec.Voided,
		CreatedBy:            rec.CreatedBy,
		Version:              rec.Version,
		CreatedAt:            rec.CreatedAt,
		UpdatedAt:            rec.UpdatedAt,
	}
	if rec.FollowUpDate != nil {
		out.FollowUpDate = rec.FollowUpDate.Format(time.DateOnly)
	}
	return out
}

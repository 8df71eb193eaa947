package records

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/pkg/pagination"
)

// Handler exposes the facade operations over HTTP. It is an external
// collaborator of the core: every route goes through a Service operation
// and no route reaches into a sub-structure directly.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients", h.CreatePatient)
	api.GET("/patients", h.ListPatients)
	api.GET("/patients/:id", h.GetPatient)
	api.PUT("/patients/:id/contact", h.UpdateContact)
	api.POST("/patients/:id/history", h.AddMedicalHistory)
	api.POST("/patients/:id/visits", h.AddVisitRecord)
	api.GET("/patients/:id/billing", h.GetBilling)
	api.POST("/patients/:id/charges", h.CreateCharge)
	api.POST("/patients/:id/payments", h.CreatePayment)

	api.POST("/appointments", h.CreateAppointment)
	api.GET("/appointments", h.ListAppointments)
	api.PUT("/appointments/:id/cancel", h.CancelAppointment)
	api.PUT("/appointments/:id/complete", h.CompleteAppointment)
	api.PUT("/appointments/:id/reschedule", h.RescheduleAppointment)

	api.POST("/waitlist", h.AddToWaitlist)
	api.GET("/waitlist", h.ListWaitlist)
	api.GET("/waitlist/next", h.PeekWaitlist)
	api.POST("/waitlist/next", h.DequeueWaitlist)

	api.GET("/billing", h.ListBilling)

	api.POST("/visit-plans", h.CreateVisitPlan)
	api.GET("/visit-plans", h.ListVisitPlans)
	api.GET("/visit-plans/:id", h.GetVisitPlan)
	api.PUT("/visit-plans/:id/status", h.SetVisitPlanStatus)
	api.PUT("/visit-plans/:id/report", h.UpdateVisitPlanReport)
	api.GET("/visit-plans/:id/report", h.GetVisitPlanReport)

	api.GET("/reports/patients/:id", h.PatientReport)
	api.GET("/reports/appointments", h.AppointmentReport)
	api.GET("/reports/revenue", h.RevenueReport)
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// -- Patients --

type createPatientRequest struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Contact string `json:"contact"`
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var req createPatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if !h.svc.AddPatient(req.ID, req.Name, req.Age, req.Contact) {
		return echo.NewHTTPError(http.StatusConflict, "patient id already exists")
	}
	return c.JSON(http.StatusCreated, h.svc.FindPatient(req.ID))
}

func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	all := h.svc.AllPatients()
	page := pagination.Slice(len(all), pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(all[page.Start:page.End], len(all), pg.Limit, pg.Offset))
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p := h.svc.FindPatient(id)
	if p == nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdateContact(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req struct {
		Contact string `json:"contact"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !h.svc.UpdateContact(id, req.Contact) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, h.svc.FindPatient(id))
}

func (h *Handler) AddMedicalHistory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req struct {
		Entry string `json:"entry"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Entry == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "entry is required")
	}
	if !h.svc.AddMedicalHistory(id, req.Entry) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, h.svc.FindPatient(id))
}

func (h *Handler) AddVisitRecord(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req struct {
		Record string `json:"record"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Record == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "record is required")
	}
	if !h.svc.AddVisitRecord(id, req.Record) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, h.svc.FindPatient(id))
}

// -- Appointments --

type createAppointmentRequest struct {
	PatientID int    `json:"patient_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a := h.svc.ScheduleAppointment(req.PatientID, req.Date, req.Time)
	if a == nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	pg := pagination.FromContext(c)
	all := h.svc.AllAppointments()
	page := pagination.Slice(len(all), pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(all[page.Start:page.End], len(all), pg.Limit, pg.Offset))
}

func (h *Handler) CancelAppointment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if !h.svc.CancelAppointment(id) {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CompleteAppointment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if !h.svc.CompleteAppointment(id) {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) RescheduleAppointment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req struct {
		Date string `json:"date"`
		Time string `json:"time"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !h.svc.RescheduleAppointment(id, req.Date, req.Time) {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Waiting list --

type waitlistRequest struct {
	PatientID int  `json:"patient_id"`
	Priority  *int `json:"priority,omitempty"`
}

func (h *Handler) AddToWaitlist(c echo.Context) error {
	var req waitlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ok := false
	if req.Priority != nil {
		ok = h.svc.AddToWaitingListWithPriority(req.PatientID, *req.Priority)
	} else {
		ok = h.svc.AddToWaitingList(req.PatientID)
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.NoContent(http.StatusCreated)
}

func (h *Handler) ListWaitlist(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":  h.svc.WaitingPatients(),
		"total": len(h.svc.WaitingPatients()),
	})
}

func (h *Handler) PeekWaitlist(c echo.Context) error {
	p := h.svc.NextWaiting()
	if p == nil {
		return echo.NewHTTPError(http.StatusNotFound, "waiting list is empty")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DequeueWaitlist(c echo.Context) error {
	p := h.svc.RemoveFromWaitingList()
	if p == nil {
		return echo.NewHTTPError(http.StatusNotFound, "waiting list is empty")
	}
	return c.JSON(http.StatusOK, p)
}

// -- Billing --

type amountRequest struct {
	Amount float64 `json:"amount"`
	Date   string  `json:"date,omitempty"`
}

func (h *Handler) CreateCharge(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req amountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Amount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be positive")
	}
	if !h.svc.GenerateBill(id, req.Amount) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusCreated, h.svc.BillingFor(id))
}

func (h *Handler) CreatePayment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req amountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Amount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be positive")
	}
	if !h.svc.AddPayment(id, req.Amount, req.Date) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusCreated, h.svc.BillingFor(id))
}

func (h *Handler) GetBilling(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	l := h.svc.BillingFor(id)
	if l == nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handler) ListBilling(c echo.Context) error {
	pg := pagination.FromContext(c)
	all := h.svc.AllBilling()
	page := pagination.Slice(len(all), pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(all[page.Start:page.End], len(all), pg.Limit, pg.Offset))
}

// -- Visit plans --

type createVisitPlanRequest struct {
	PatientID int    `json:"patient_id"`
	Date      string `json:"date"`
	Purpose   string `json:"purpose"`
	Doctor    string `json:"doctor"`
}

func (h *Handler) CreateVisitPlan(c echo.Context) error {
	var req createVisitPlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v := h.svc.CreateVisitPlan(req.PatientID, req.Date, req.Purpose, req.Doctor)
	if v == nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) ListVisitPlans(c echo.Context) error {
	if pid := c.QueryParam("patient_id"); pid != "" {
		id, err := strconv.Atoi(pid)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		plans := h.svc.VisitPlansForPatient(id)
		return c.JSON(http.StatusOK, map[string]interface{}{"data": plans, "total": len(plans)})
	}
	pg := pagination.FromContext(c)
	all := h.svc.AllVisitPlans()
	page := pagination.Slice(len(all), pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(all[page.Start:page.End], len(all), pg.Limit, pg.Offset))
}

func (h *Handler) GetVisitPlan(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	v := h.svc.FindVisitPlan(id)
	if v == nil {
		return echo.NewHTTPError(http.StatusNotFound, "visit plan not found")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) SetVisitPlanStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !h.svc.SetVisitPlanStatus(id, req.Status) {
		if h.svc.FindVisitPlan(id) == nil {
			return echo.NewHTTPError(http.StatusNotFound, "visit plan not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	return c.JSON(http.StatusOK, h.svc.FindVisitPlan(id))
}

func (h *Handler) UpdateVisitPlanReport(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req struct {
		Diagnosis     string `json:"diagnosis"`
		TreatmentPlan string `json:"treatment_plan"`
		DoctorNote    string `json:"doctor_note"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !h.svc.UpdateVisitPlanReport(id, req.Diagnosis, req.TreatmentPlan, req.DoctorNote) {
		return echo.NewHTTPError(http.StatusNotFound, "visit plan not found")
	}
	return c.JSON(http.StatusOK, h.svc.FindVisitPlan(id))
}

func (h *Handler) GetVisitPlanReport(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if h.svc.FindVisitPlan(id) == nil {
		return echo.NewHTTPError(http.StatusNotFound, "visit plan not found")
	}
	return c.String(http.StatusOK, h.svc.VisitPlanFormattedReport(id))
}

// -- Reports --

func (h *Handler) PatientReport(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if h.svc.FindPatient(id) == nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.String(http.StatusOK, h.svc.GeneratePatientReport(id))
}

func (h *Handler) AppointmentReport(c echo.Context) error {
	return c.String(http.StatusOK, h.svc.GenerateAppointmentReport())
}

func (h *Handler) RevenueReport(c echo.Context) error {
	return c.String(http.StatusOK, h.svc.GenerateRevenueReport())
}

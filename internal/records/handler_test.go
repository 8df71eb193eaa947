package records

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler(t *testing.T) (*Handler, *echo.Echo) {
	t.Helper()
	h := NewHandler(newPopulatedService(t))
	return h, echo.New()
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestHandler_CreatePatient(t *testing.T) {
	h, e := newTestHandler(t)
	req := jsonRequest(http.MethodPost, "/", `{"id":10,"name":"Dina Patel","age":35,"contact":"555-0110"}`)
	rec := httptest.NewRecorder()

	if err := h.CreatePatient(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_CreatePatient_DuplicateConflicts(t *testing.T) {
	h, e := newTestHandler(t)
	req := jsonRequest(http.MethodPost, "/", `{"id":1,"name":"Impostor","age":99,"contact":"x"}`)
	rec := httptest.NewRecorder()

	err := h.CreatePatient(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Errorf("expected 409 HTTPError, got %v", err)
	}
}

func TestHandler_CreatePatient_MissingName(t *testing.T) {
	h, e := newTestHandler(t)
	req := jsonRequest(http.MethodPost, "/", `{"id":10}`)
	rec := httptest.NewRecorder()

	err := h.CreatePatient(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400 HTTPError, got %v", err)
	}
}

func TestHandler_GetPatient(t *testing.T) {
	h, e := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.GetPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["name"] != "Asha Rao" {
		t.Errorf("name = %v, want Asha Rao", body["name"])
	}
}

func TestHandler_GetPatient_NotFoundAndBadID(t *testing.T) {
	h, e := newTestHandler(t)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("99")
	if he, ok := h.GetPatient(c).(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
		t.Error("expected 404 for unknown patient")
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("not-a-number")
	if he, ok := h.GetPatient(c).(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
		t.Error("expected 400 for non-numeric id")
	}
}

func TestHandler_ListPatients_Paginated(t *testing.T) {
	h, e := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/?limit=2&offset=0", nil)
	rec := httptest.NewRecorder()

	if err := h.ListPatients(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body struct {
		Data    []json.RawMessage `json:"data"`
		Total   int               `json:"total"`
		HasMore bool              `json:"has_more"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Data) != 2 || body.Total != 3 || !body.HasMore {
		t.Errorf("page = %d items, total %d, has_more %v", len(body.Data), body.Total, body.HasMore)
	}
}

func TestHandler_CreateAppointment(t *testing.T) {
	h, e := newTestHandler(t)
	req := jsonRequest(http.MethodPost, "/", `{"patient_id":1,"date":"2024-01-15","time":"09:00"}`)
	rec := httptest.NewRecorder()

	if err := h.CreateAppointment(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	req = jsonRequest(http.MethodPost, "/", `{"patient_id":99,"date":"2024-01-15","time":"09:00"}`)
	err := h.CreateAppointment(e.NewContext(req, httptest.NewRecorder()))
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown patient, got %v", err)
	}
}

func TestHandler_AppointmentStatusRoutes(t *testing.T) {
	h, e := newTestHandler(t)
	a := h.svc.ScheduleAppointment(1, "2024-01-15", "09:00")

	for name, fn := range map[string]echo.HandlerFunc{
		"cancel":   h.CancelAppointment,
		"complete": h.CompleteAppointment,
	} {
		c := e.NewContext(httptest.NewRequest(http.MethodPut, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues("1")
		if err := fn(c); err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
		}
	}

	req := jsonRequest(http.MethodPut, "/", `{"date":"2024-02-01","time":"10:00"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.RescheduleAppointment(c); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if a.Date != "2024-02-01" || a.Status != "Scheduled" {
		t.Errorf("appointment after reschedule: %v", a)
	}
}

func TestHandler_WaitlistFlow(t *testing.T) {
	h, e := newTestHandler(t)

	for _, body := range []string{
		`{"patient_id":3}`,
		`{"patient_id":2}`,
		`{"patient_id":1,"priority":90}`,
	} {
		rec := httptest.NewRecorder()
		if err := h.AddToWaitlist(e.NewContext(jsonRequest(http.MethodPost, "/", body), rec)); err != nil {
			t.Fatalf("AddToWaitlist(%s): %v", body, err)
		}
		if rec.Code != http.StatusCreated {
			t.Errorf("expected 201, got %d", rec.Code)
		}
	}

	// explicit priority 90 beats ages 58 and 30
	rec := httptest.NewRecorder()
	if err := h.DequeueWaitlist(e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)); err != nil {
		t.Fatalf("DequeueWaitlist: %v", err)
	}
	var p struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("dequeued patient %d, want 1", p.ID)
	}

	err := h.AddToWaitlist(e.NewContext(jsonRequest(http.MethodPost, "/", `{"patient_id":99}`), httptest.NewRecorder()))
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown patient, got %v", err)
	}
}

func TestHandler_BillingFlow(t *testing.T) {
	h, e := newTestHandler(t)

	req := jsonRequest(http.MethodPost, "/", `{"amount":100}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.CreateCharge(c); err != nil {
		t.Fatalf("CreateCharge: %v", err)
	}

	req = jsonRequest(http.MethodPost, "/", `{"amount":150,"date":"2024-01-10"}`)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.CreatePayment(c); err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	var ledger struct {
		Balance float64 `json:"balance"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &ledger); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if ledger.Balance != 0 {
		t.Errorf("balance = %v, want 0 (clamped)", ledger.Balance)
	}

	req = jsonRequest(http.MethodPost, "/", `{"amount":-5}`)
	c = e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("1")
	if he, ok := h.CreateCharge(c).(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
		t.Error("expected 400 for non-positive amount")
	}
}

func TestHandler_VisitPlanFlow(t *testing.T) {
	h, e := newTestHandler(t)

	req := jsonRequest(http.MethodPost, "/", `{"patient_id":1,"date":"2024-05-01","purpose":"Checkup","doctor":"Dr. Lin"}`)
	rec := httptest.NewRecorder()
	if err := h.CreateVisitPlan(e.NewContext(req, rec)); err != nil {
		t.Fatalf("CreateVisitPlan: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	req = jsonRequest(http.MethodPut, "/", `{"diagnosis":"Bronchitis","treatment_plan":"Rest"}`)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.UpdateVisitPlanReport(c); err != nil {
		t.Fatalf("UpdateVisitPlanReport: %v", err)
	}

	req = jsonRequest(http.MethodPut, "/", `{"status":"Completed"}`)
	c = e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.SetVisitPlanStatus(c); err != nil {
		t.Fatalf("SetVisitPlanStatus: %v", err)
	}
	if got := h.svc.FindPatient(1).VisitRecords; len(got) != 1 || got[0] != "2024-05-01" {
		t.Errorf("VisitRecords = %v", got)
	}

	req = jsonRequest(http.MethodPut, "/", `{"status":"Vanished"}`)
	c = e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("1")
	if he, ok := h.SetVisitPlanStatus(c).(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
		t.Error("expected 400 for invalid status")
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.GetVisitPlanReport(c); err != nil {
		t.Fatalf("GetVisitPlanReport: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Diagnosis: Bronchitis") {
		t.Errorf("report body:\n%s", rec.Body.String())
	}
}

func TestHandler_ListVisitPlansByPatient(t *testing.T) {
	h, e := newTestHandler(t)
	h.svc.CreateVisitPlan(1, "2024-05-01", "Checkup", "Dr. Lin")
	h.svc.CreateVisitPlan(2, "2024-05-02", "Checkup", "Dr. Lin")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?patient_id=1", nil)
	if err := h.ListVisitPlans(e.NewContext(req, rec)); err != nil {
		t.Fatalf("ListVisitPlans: %v", err)
	}
	var body struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Total != 1 {
		t.Errorf("total = %d, want 1", body.Total)
	}
}

func TestHandler_Reports(t *testing.T) {
	h, e := newTestHandler(t)
	h.svc.ScheduleAppointment(1, "2024-03-01", "09:00")
	h.svc.GenerateBill(2, 250.50)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.PatientReport(c); err != nil {
		t.Fatalf("PatientReport: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "PATIENT REPORT") {
		t.Errorf("patient report body:\n%s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	if err := h.AppointmentReport(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)); err != nil {
		t.Fatalf("AppointmentReport: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Total Appointments: 1") {
		t.Errorf("appointment report body:\n%s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	if err := h.RevenueReport(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)); err != nil {
		t.Fatalf("RevenueReport: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Total Outstanding Revenue: $250.50") {
		t.Errorf("revenue report body:\n%s", rec.Body.String())
	}
}

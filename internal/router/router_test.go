package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-adoption/internal/router"
)

const adminID = "admin-1"

func TestHTTP_EndToEnd_AdoptionFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	// 1) Admin crea refugio y mascota
	shelterID := createOK(t, ts.URL, "/shelters", adminID, map[string]any{
		"name":  "Huellitas",
		"city":  "Lima",
		"email": "hola@huellitas.org",
	})
	petID := createOK(t, ts.URL, "/pets", adminID, map[string]any{
		"shelter_id":         shelterID,
		"name":               "Milo",
		"species":            "dog",
		"sex":                "male",
		"age_months":         18,
		"adoption_fee_cents": 5000,
	})

	// 2) Usuario postula; un segundo envío es duplicado
	appID := createOK(t, ts.URL, "/applications", "42", map[string]any{
		"pet_id": petID,
		"reason": "Tengo patio",
	})
	{
		st, body := doReq(t, ts.URL, "POST", "/applications", "42", map[string]any{"pet_id": petID})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate application, got %d body=%s", st, string(body))
		}
	}

	// 3) Otro usuario no puede ver la solicitud ajena
	{
		st, _ := doReq(t, ts.URL, "GET", "/applications/"+appID, "99", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for foreign application, got %d", st)
		}
	}

	// 4) Un usuario común no puede aprobar
	{
		st, _ := doReq(t, ts.URL, "POST", "/applications/"+appID+"/approve", "42", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 approve by non-admin, got %d", st)
		}
	}

	// 5) Admin revisa y aprueba
	for _, step := range []string{"review", "approve"} {
		st, body := doReq(t, ts.URL, "POST", "/applications/"+appID+"/"+step, adminID, map[string]any{"notes": "ok"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 %s, got %d body=%s", step, st, string(body))
		}
	}

	// 6) La mascota quedó adoptada
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get pet, got %d", st)
		}
		var pet map[string]any
		mustJSON(t, body, &pet)
		if pet["adoption_status"] != "ADOPTED" || pet["available"] != false {
			t.Fatalf("expected ADOPTED pet, got %v", pet)
		}
	}

	// 7) Nadie más puede postular
	{
		st, _ := doReq(t, ts.URL, "POST", "/applications", "77", map[string]any{"pet_id": petID})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 applying to adopted pet, got %d", st)
		}
	}

	// 8) Estados terminales no se tocan por updateStatus
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/applications/"+appID+"/status", adminID, map[string]any{"status": "REJECTED"})
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 leaving APPROVED via status, got %d", st)
		}
	}

	// 9) Historial: submit, review, approve
	{
		st, body := doReq(t, ts.URL, "GET", "/history/application/"+appID, adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 history, got %d body=%s", st, string(body))
		}
		var entries []map[string]any
		mustJSON(t, body, &entries)
		if len(entries) != 3 {
			t.Fatalf("expected 3 history entries, got %d", len(entries))
		}
		if entries[2]["to"] != "APPROVED" {
			t.Fatalf("expected last entry to APPROVED, got %v", entries[2])
		}
	}

	// 10) Mis solicitudes
	{
		st, body := doReq(t, ts.URL, "GET", "/me/applications", "42", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 my applications, got %d", st)
		}
		var items []map[string]any
		mustJSON(t, body, &items)
		if len(items) != 1 || items[0]["status"] != "APPROVED" {
			t.Fatalf("unexpected my applications: %v", items)
		}
	}
}

func TestHTTP_EndToEnd_PaymentRefund(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "POST", "/payments", "42", map[string]any{
		"amount_cents": 5000,
		"purpose":      "adoption fee",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 initiate, got %d body=%s", st, string(body))
	}
	var p map[string]any
	mustJSON(t, body, &p)
	txID, _ := p["transaction_id"].(string)
	if txID == "" || p["status"] != "PENDING" {
		t.Fatalf("unexpected payment: %v", p)
	}

	// Reembolsar un pago pendiente no es válido
	if st, _ := doReq(t, ts.URL, "POST", "/payments/"+txID+"/refund", adminID, nil); st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 refund on PENDING, got %d", st)
	}

	if st, body := doReq(t, ts.URL, "POST", "/payments/"+txID+"/complete", adminID, nil); st != http.StatusOK {
		t.Fatalf("expected 200 complete, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "POST", "/payments/"+txID+"/refund", adminID, map[string]any{"reason": "changed mind"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 refund, got %d body=%s", st, string(body))
	}
	mustJSON(t, body, &p)
	if p["status"] != "REFUNDED" {
		t.Fatalf("expected REFUNDED, got %v", p["status"])
	}

	if st, _ := doReq(t, ts.URL, "POST", "/payments/"+txID+"/refund", adminID, nil); st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 second refund, got %d", st)
	}
}

func TestHTTP_AuthAndFavorites(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	if st, _ := doReq(t, ts.URL, "POST", "/pets", "", map[string]any{"name": "X", "species": "cat"}); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "POST", "/pets", "42", map[string]any{"name": "X", "species": "cat"}); st != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", st)
	}

	petID := createOK(t, ts.URL, "/pets", adminID, map[string]any{"name": "Nala", "species": "cat"})

	want := []string{"added", "removed", "added"}
	for i, w := range want {
		st, body := doReq(t, ts.URL, "POST", "/favorites/"+petID+"/toggle", "42", nil)
		if st != http.StatusOK {
			t.Fatalf("toggle %d: expected 200, got %d body=%s", i, st, string(body))
		}
		var out map[string]any
		mustJSON(t, body, &out)
		if out["result"] != w {
			t.Fatalf("toggle %d: expected %s, got %v", i, w, out["result"])
		}
	}

	if st, _ := doReq(t, ts.URL, "POST", "/favorites/nope/toggle", "42", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 toggling unknown pet, got %d", st)
	}

	for _, path := range []string{"/health", "/metrics"} {
		if st, _ := doReq(t, ts.URL, "GET", path, "", nil); st != http.StatusOK {
			t.Fatalf("expected 200 %s, got %d", path, st)
		}
	}
}

func TestHTTP_MedicalRecords(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	petID := createOK(t, ts.URL, "/pets", adminID, map[string]any{"name": "Luna", "species": "cat"})

	if st, _ := doReq(t, ts.URL, "POST", "/medical-records", "42", map[string]any{"pet_id": petID}); st != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "POST", "/medical-records", adminID, map[string]any{
		"pet_id": petID, "record_type": "CHECKUP", "description": "control", "record_date": "03/04/2026",
	}); st != http.StatusBadRequest {
		t.Fatalf("expected 400 bad record_date, got %d", st)
	}

	vaccID := createOK(t, ts.URL, "/medical-records", adminID, map[string]any{
		"pet_id":            petID,
		"record_type":       "vaccination",
		"description":       "triple felina",
		"veterinarian_name": "Dra. Ruiz",
		"weight_kg":         3.9,
		"cost_cents":        2500,
	})
	surgeryID := createOK(t, ts.URL, "/medical-records", adminID, map[string]any{
		"pet_id":           petID,
		"record_type":      "SURGERY",
		"description":      "castración programada",
		"treatment_status": "SCHEDULED",
	})

	for _, step := range []string{"start", "complete"} {
		st, body := doReq(t, ts.URL, "POST", "/medical-records/"+surgeryID+"/"+step, adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 %s, got %d body=%s", step, st, string(body))
		}
	}

	st, body := doReq(t, ts.URL, "POST", "/medical-records/"+surgeryID+"/follow-up", adminID, map[string]any{
		"follow_up_date": time.Now().AddDate(0, 0, 10).Format(time.DateOnly),
		"notes":          "retirar puntos",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 follow-up, got %d body=%s", st, string(body))
	}
	var rec map[string]any
	mustJSON(t, body, &rec)
	if rec["treatment_status"] != "FOLLOW_UP_NEEDED" || rec["follow_up_required"] != true {
		t.Fatalf("unexpected record after follow-up: %v", rec)
	}

	if st, _ := doReq(t, ts.URL, "POST", "/medical-records/"+surgeryID+"/cancel", adminID, nil); st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 cancel from FOLLOW_UP_NEEDED, got %d", st)
	}

	st, body = doReq(t, ts.URL, "GET", "/medical-records/pet/"+petID+"/vaccinations", "42", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 vaccinations, got %d", st)
	}
	var items []map[string]any
	mustJSON(t, body, &items)
	if len(items) != 1 || items[0]["id"] != vaccID {
		t.Fatalf("unexpected vaccinations: %v", items)
	}

	if st, _ := doReq(t, ts.URL, "POST", "/medical-records/"+vaccID+"/void", adminID, map[string]any{"notes": "duplicado"}); st != http.StatusOK {
		t.Fatalf("expected 200 void, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "PUT", "/medical-records/"+vaccID, adminID, map[string]any{
		"record_type": "VACCINATION", "description": "triple felina",
	}); st != http.StatusConflict {
		t.Fatalf("expected 409 editing voided record, got %d", st)
	}

	st, body = doReq(t, ts.URL, "GET", "/medical-records/pet/"+petID, "42", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 pet records, got %d", st)
	}
	mustJSON(t, body, &items)
	if len(items) != 1 || items[0]["id"] != surgeryID {
		t.Fatalf("expected only the surgery record, got %v", items)
	}

	st, body = doReq(t, ts.URL, "GET", "/history/medical_record/"+surgeryID, adminID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 history, got %d body=%s", st, string(body))
	}
	var entries []map[string]any
	mustJSON(t, body, &entries)
	if len(entries) != 4 {
		t.Fatalf("expected 4 history entries, got %d", len(entries))
	}
}

// createOK hace POST como el usuario dado y devuelve el id creado.
func createOK(t *testing.T, baseURL, path, userID string, payload map[string]any) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", path, userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 POST %s, got %d body=%s", path, st, string(body))
	}
	var out struct {
		ID string `json:"id"`
	}
	mustJSON(t, body, &out)
	if out.ID == "" {
		t.Fatalf("POST %s: missing id in %s", path, string(body))
	}
	return out.ID
}

func doReq(t *testing.T, baseURL, method, path, userID string, payload any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}
	if userID == adminID {
		req.Header.Set("X-Debug-Role", "admin")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func mustJSON(t *testing.T, b []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("unmarshal: %v body=%s", err, string(b))
	}
}

package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"zoo-care-service/internal/router"
)

func TestHTTP_EndToEnd_BehaviorFlagsAnimal(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	keeperID := registerUser(t, ts.URL, map[string]any{
		"name":     "Ana",
		"email":    "ana@zoo.example",
		"password": "secret123",
	})

	animalID := createAnimal(t, ts.URL, keeperID, map[string]any{
		"name":    "Luna",
		"species": "Lion",
		"breed":   "African",
		"age":     4,
	})

	// 1) Recién creado: healthy
	if st := animalStatus(t, ts.URL, keeperID, animalID); st != "healthy" {
		t.Fatalf("expected healthy on create, got %s", st)
	}

	// 2) Observación normal: no cambia nada
	{
		st, body := doReq(t, ts.URL, "POST", "/behavior/add", keeperID, map[string]any{
			"animalId":   animalID,
			"eating":     "Reduced",
			"movement":   "Normal",
			"mood":       "Calm",
			"recordedBy": keeperID,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 behavior add, got %d body=%s", st, string(body))
		}
	}
	if st := animalStatus(t, ts.URL, keeperID, animalID); st != "healthy" {
		t.Fatalf("expected healthy after normal behavior, got %s", st)
	}

	// 3) Observación crítica (eating=None): flag automático
	{
		st, body := doReq(t, ts.URL, "POST", "/behavior/add", keeperID, map[string]any{
			"animalId":   animalID,
			"eating":     "None",
			"movement":   "Normal",
			"mood":       "Calm",
			"recordedBy": keeperID,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 critical behavior, got %d body=%s", st, string(body))
		}
	}
	if st := animalStatus(t, ts.URL, keeperID, animalID); st != "needs_attention" {
		t.Fatalf("expected needs_attention after critical behavior, got %s", st)
	}

	// 4) Vocabulario desconocido => 400 y nada persiste
	{
		st, _ := doReq(t, ts.URL, "POST", "/behavior/add", keeperID, map[string]any{
			"animalId":   animalID,
			"eating":     "Starving",
			"movement":   "Normal",
			"mood":       "Calm",
			"recordedBy": keeperID,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown vocabulary, got %d", st)
		}
	}

	// 5) Historial del animal
	{
		st, body := doReq(t, ts.URL, "GET", "/behavior/singlebehavior/"+animalID, keeperID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 single behavior, got %d", st)
		}
		var resp struct {
			Count int `json:"count"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Count != 2 {
			t.Fatalf("expected 2 behavior logs, got %d body=%s", resp.Count, string(body))
		}
	}

	// 6) Edición manual de status: única vía de vuelta a healthy
	{
		st, body := doReq(t, ts.URL, "PUT", "/animal/update/"+animalID, keeperID, map[string]any{
			"status": "healthy",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 status edit, got %d body=%s", st, string(body))
		}
	}
	if st := animalStatus(t, ts.URL, keeperID, animalID); st != "healthy" {
		t.Fatalf("expected healthy after manual edit, got %s", st)
	}
}

func TestHTTP_BehaviorGetAll_ReturnsFullHistory(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	keeperID := registerUser(t, ts.URL, map[string]any{
		"name":     "Ana",
		"email":    "ana@zoo.example",
		"password": "secret123",
	})
	animalID := createAnimal(t, ts.URL, keeperID, map[string]any{
		"name":    "Luna",
		"species": "Lion",
		"breed":   "African",
		"age":     4,
	})

	// Más logs que una página del listado filtrado: getAll no pagina.
	const total = 1001
	for i := 0; i < total; i++ {
		st, body := doReq(t, ts.URL, "POST", "/behavior/add", keeperID, map[string]any{
			"animalId":   animalID,
			"eating":     "Normal",
			"movement":   "Normal",
			"mood":       "Calm",
			"recordedBy": keeperID,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 on behavior #%d, got %d body=%s", i, st, string(body))
		}
	}

	st, body := doReq(t, ts.URL, "GET", "/behavior/getAll", keeperID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 getAll, got %d body=%s", st, string(body))
	}
	var resp struct {
		Count     int               `json:"count"`
		Behaviors []json.RawMessage `json:"behaviors"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal getAll: %v", err)
	}
	if resp.Count != total || len(resp.Behaviors) != total {
		t.Fatalf("expected %d behavior logs, got count=%d len=%d", total, resp.Count, len(resp.Behaviors))
	}
}

func TestHTTP_AssignVet_Rules(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	vetID := registerUser(t, ts.URL, map[string]any{
		"name":     "Dr. Vega",
		"email":    "vega@zoo.example",
		"password": "secret123",
		"userType": "vet",
	})
	keeperID := registerUser(t, ts.URL, map[string]any{
		"name":     "Ana",
		"email":    "ana@zoo.example",
		"password": "secret123",
	})

	animalID := createAnimal(t, ts.URL, keeperID, map[string]any{
		"name":    "Rex",
		"species": "Tiger",
	})

	// 1) Asignar un no-vet => 404 con mensaje específico
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/assign-vet", keeperID, map[string]any{
			"vetId":  keeperID,
			"reason": "wrong person",
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for non-vet, got %d body=%s", st, string(body))
		}
		if msg := messageOf(t, body); msg != "Veterinarian not found or invalid user type." {
			t.Fatalf("unexpected message %q", msg)
		}
	}

	// 2) Asignación válida por la ruta del recurso
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/assign-vet", keeperID, map[string]any{
			"vetId":  vetID,
			"reason": "limping on hind leg",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 assign vet, got %d body=%s", st, string(body))
		}
	}

	// 3) Mismo vet de nuevo (por la variante /behavior) => 400
	{
		st, body := doReq(t, ts.URL, "POST", "/behavior/assign-vet", keeperID, map[string]any{
			"animalId": animalID,
			"vetId":    vetID,
			"reason":   "again",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 duplicate assignment, got %d body=%s", st, string(body))
		}
		if msg := messageOf(t, body); msg != "This veterinarian is already assigned to this animal." {
			t.Fatalf("unexpected message %q", msg)
		}
	}

	// 4) La asignación original sigue intacta
	{
		st, body := doReq(t, ts.URL, "GET", "/behavior/assigned-vet/"+animalID, keeperID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 assigned vet, got %d body=%s", st, string(body))
		}
		var resp struct {
			Assignment struct {
				VetID  string `json:"vetId"`
				Reason string `json:"reason"`
			} `json:"assignment"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Assignment.VetID != vetID || resp.Assignment.Reason != "limping on hind leg" {
			t.Fatalf("unexpected assignment %+v", resp.Assignment)
		}
	}

	// 5) Animales del vet (y su alias bajo /user)
	for _, path := range []string{
		"/behavior/vet/" + vetID + "/assigned-animals",
		"/user/vet/" + vetID + "/assigned-animals",
	} {
		st, body := doReq(t, ts.URL, "GET", path, keeperID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 %s, got %d", path, st)
		}
		var resp struct {
			Count int `json:"count"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Count != 1 {
			t.Fatalf("expected 1 assigned animal via %s, got %d", path, resp.Count)
		}
	}

	// 6) ID malformado => 400, no 404
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/not-a-uuid/assign-vet", keeperID, map[string]any{
			"vetId": vetID,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 malformed id, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_Tasks_Lifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	keeperID := registerUser(t, ts.URL, map[string]any{
		"name":     "Ana",
		"email":    "ana@zoo.example",
		"password": "secret123",
	})
	animalID := createAnimal(t, ts.URL, keeperID, map[string]any{
		"name":    "Coco",
		"species": "Parrot",
	})

	// 1) Horario inválido => 400
	{
		st, body := doReq(t, ts.URL, "POST", "/tasks/add", keeperID, map[string]any{
			"type":          "Feeding",
			"animalId":      animalID,
			"assignedTo":    keeperID,
			"scheduleDate":  "2026-04-01",
			"scheduleTimes": []string{"25:00"},
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 bad time, got %d body=%s", st, string(body))
		}
	}

	// 2) Recurrente sin endDate => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/tasks/add", keeperID, map[string]any{
			"type":              "Feeding",
			"animalId":          animalID,
			"assignedTo":        keeperID,
			"scheduleDate":      "2026-04-01",
			"scheduleTimes":     []string{"08:00"},
			"isRecurring":       true,
			"recurrencePattern": "Daily",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 recurring without endDate, got %d", st)
		}
	}

	// 3) Alta válida
	taskID := ""
	{
		st, body := doReq(t, ts.URL, "POST", "/tasks/add", keeperID, map[string]any{
			"type":              "Feeding",
			"animalId":          animalID,
			"assignedTo":        keeperID,
			"scheduleDate":      "2026-04-01",
			"scheduleTimes":     []string{"08:00", "16:30"},
			"isRecurring":       true,
			"recurrencePattern": "Daily",
			"endDate":           "2026-05-01",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 task add, got %d body=%s", st, string(body))
		}
		var resp struct {
			Task struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"task"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Task.ID == "" || resp.Task.Status != "Pending" {
			t.Fatalf("unexpected task %+v body=%s", resp.Task, string(body))
		}
		taskID = resp.Task.ID
	}

	// 4) getAll devuelve array pelado
	{
		st, body := doReq(t, ts.URL, "GET", "/tasks/getAll", keeperID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 tasks getAll, got %d", st)
		}
		var list []map[string]any
		if err := json.Unmarshal(body, &list); err != nil {
			t.Fatalf("expected bare array, got %s", string(body))
		}
		if len(list) != 1 {
			t.Fatalf("expected 1 task, got %d", len(list))
		}
	}

	// 5) Conteo pendiente / completado
	if n := taskCount(t, ts.URL, keeperID, "pending"); n != 1 {
		t.Fatalf("expected 1 pending, got %d", n)
	}
	if n := taskCount(t, ts.URL, keeperID, "completed"); n != 0 {
		t.Fatalf("expected 0 completed, got %d", n)
	}

	// 6) Completar con evidencia
	{
		st, body := doReq(t, ts.URL, "POST", "/tasks/"+taskID+"/complete", keeperID, map[string]any{
			"imageProof": "https://img.example/proof.jpg",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 complete, got %d body=%s", st, string(body))
		}
		var resp struct {
			Task struct {
				Status             string `json:"status"`
				CompletionVerified bool   `json:"completionVerified"`
			} `json:"task"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Task.Status != "Completed" || resp.Task.CompletionVerified {
			t.Fatalf("expected Completed unverified, got %+v", resp.Task)
		}
	}

	// 7) Verificar evidencia
	{
		st, body := doReq(t, ts.URL, "POST", "/tasks/"+taskID+"/verify", keeperID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 verify, got %d body=%s", st, string(body))
		}
	}

	if n := taskCount(t, ts.URL, keeperID, "completed"); n != 1 {
		t.Fatalf("expected 1 completed, got %d", n)
	}
}

func TestHTTP_Users_And_MedicalRecords(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	vetID := registerUser(t, ts.URL, map[string]any{
		"name":           "Dr. Vega",
		"email":          "vega@zoo.example",
		"password":       "secret123",
		"userType":       "vet",
		"specialization": "Felines",
		"experience":     8,
	})
	keeperID := registerUser(t, ts.URL, map[string]any{
		"name":     "Ana",
		"email":    "ana@zoo.example",
		"password": "secret123",
	})

	// 1) Login devuelve el user (sin token en modo dev)
	{
		st, body := doReq(t, ts.URL, "POST", "/user/login", "", map[string]any{
			"email":    "vega@zoo.example",
			"password": "secret123",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
		}
		var resp struct {
			User struct {
				UserType string `json:"userType"`
			} `json:"user"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.User.UserType != "vet" {
			t.Fatalf("expected vet userType, got %q", resp.User.UserType)
		}
	}

	// 2) Password incorrecto => 401
	{
		st, _ := doReq(t, ts.URL, "POST", "/user/login", "", map[string]any{
			"email":    "vega@zoo.example",
			"password": "wrong",
		})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 bad password, got %d", st)
		}
	}

	// 3) Listados por rol
	{
		st, body := doReq(t, ts.URL, "GET", "/user/getAllVetsOnly", keeperID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 vets list, got %d", st)
		}
		var resp struct {
			Count int `json:"count"`
			Users []struct {
				ID       string `json:"id"`
				UserType string `json:"userType"`
			} `json:"users"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Count != 1 || len(resp.Users) != 1 || resp.Users[0].ID != vetID {
			t.Fatalf("unexpected vets list %s", string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/user/countUsersOnly", keeperID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 users count, got %d", st)
		}
		var resp struct {
			Count int `json:"count"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Count != 1 {
			t.Fatalf("expected 1 keeper, got %d", resp.Count)
		}
	}

	// 4) Perfil via claims
	{
		st, body := doReq(t, ts.URL, "GET", "/user/profile", vetID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 profile, got %d body=%s", st, string(body))
		}
	}

	// 5) Registros médicos
	animalID := createAnimal(t, ts.URL, keeperID, map[string]any{
		"name":    "Luna",
		"species": "Lion",
	})

	recordID := ""
	{
		st, body := doReq(t, ts.URL, "POST", "/medical-records", vetID, map[string]any{
			"animal":       animalID,
			"veterinarian": vetID,
			"recordType":   "checkup",
			"diagnosis":    "mild dehydration",
			"weight":       182.5,
			"followUpDate": "2026-06-01",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 record, got %d body=%s", st, string(body))
		}
		var rec struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &rec)
		if rec.ID == "" {
			t.Fatalf("missing record id body=%s", string(body))
		}
		recordID = rec.ID
	}

	// 6) Lista pelada con filtro por tipo
	{
		st, body := doReq(t, ts.URL, "GET", "/medical-records?recordType=checkup", vetID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 records list, got %d", st)
		}
		var list []map[string]any
		if err := json.Unmarshal(body, &list); err != nil {
			t.Fatalf("expected bare array, got %s", string(body))
		}
		if len(list) != 1 {
			t.Fatalf("expected 1 record, got %d", len(list))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/medical-records?recordType=vaccination", vetID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 filtered list, got %d", st)
		}
		var list []map[string]any
		_ = json.Unmarshal(body, &list)
		if len(list) != 0 {
			t.Fatalf("expected empty list, got %d", len(list))
		}
	}

	// 7) Borrar registro
	{
		st, body := doReq(t, ts.URL, "DELETE", "/medical-records/"+recordID, vetID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete record, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_DeleteAnimal_RequiresAdmin(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	keeperID := registerUser(t, ts.URL, map[string]any{
		"name":     "Ana",
		"email":    "ana@zoo.example",
		"password": "secret123",
	})
	adminID := registerUser(t, ts.URL, map[string]any{
		"name":     "Root",
		"email":    "root@zoo.example",
		"password": "secret123",
		"userType": "admin",
	})

	animalID := createAnimal(t, ts.URL, keeperID, map[string]any{
		"name":    "Luna",
		"species": "Lion",
	})

	// keeper => 403
	{
		st, _ := doReqWithRole(t, ts.URL, "DELETE", "/animal/delete/"+animalID, keeperID, "user", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for keeper, got %d", st)
		}
	}

	// sin claims => 401
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/animal/delete/"+animalID, "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without claims, got %d", st)
		}
	}

	// admin => 200
	{
		st, body := doReqWithRole(t, ts.URL, "DELETE", "/animal/delete/"+animalID, adminID, "admin", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 for admin, got %d body=%s", st, string(body))
		}
	}

	// ya no existe
	{
		st, _ := doReq(t, ts.URL, "GET", "/animal/"+animalID, keeperID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", resp.StatusCode)
	}
}

// -------------------------
// Helpers
// -------------------------

func registerUser(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/user/register", "", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
	}

	var resp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.User.ID == "" {
		t.Fatalf("register: missing user id body=%s", string(body))
	}
	return resp.User.ID
}

func createAnimal(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/animal/add", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create animal, got %d body=%s", st, string(body))
	}

	var resp struct {
		Animal struct {
			ID string `json:"id"`
		} `json:"animal"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Animal.ID == "" {
		t.Fatalf("create animal: missing id body=%s", string(body))
	}
	return resp.Animal.ID
}

func animalStatus(t *testing.T, baseURL, userID, animalID string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/animal/"+animalID, userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get animal, got %d body=%s", st, string(body))
	}

	var resp struct {
		Animal struct {
			Status string `json:"status"`
		} `json:"animal"`
	}
	_ = json.Unmarshal(body, &resp)
	return resp.Animal.Status
}

func taskCount(t *testing.T, baseURL, userID, kind string) int {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/tasks/count/"+kind, userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 count %s, got %d", kind, st)
	}

	var resp struct {
		Count int `json:"count"`
	}
	_ = json.Unmarshal(body, &resp)
	return resp.Count
}

func messageOf(t *testing.T, body []byte) string {
	t.Helper()

	var resp struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &resp)
	return resp.Message
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()
	return doReqWithRole(t, baseURL, method, path, debugUserID, "", body)
}

func doReqWithRole(t *testing.T, baseURL, method, path, debugUserID, role string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}
	if role != "" {
		req.Header.Set("X-Debug-User-Role", role)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, raw
}

package api

import (
	"net/http"
	"testing"
)

func TestEnforcedUserRoutesNeedAdmin(t *testing.T) {
	env := newTestEnv(t, true)
	_, aliceToken := env.register(t, "alice", "a@x.com")
	adminToken := env.login(t, "admin", "admin123")

	status, body := env.do(t, http.MethodGet, "/api/users", nil, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d: %s", status, body)
	}

	status, body = env.do(t, http.MethodGet, "/api/users", nil, aliceToken)
	if status != http.StatusForbidden || readAPIMessage(t, body) != "Admin access required" {
		t.Fatalf("expected 403 for non-admin, got %d: %s", status, body)
	}

	status, body = env.do(t, http.MethodGet, "/api/users", nil, adminToken)
	if status != http.StatusOK || len(decodeList(t, body)) != 2 {
		t.Fatalf("expected admin to list both users, got %d: %s", status, body)
	}

	status, body = env.do(t, http.MethodGet, "/api/users", nil, "not-a-jwt")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d: %s", status, body)
	}
}

func TestEnforcedAdminAccountsCannotBeDeleted(t *testing.T) {
	env := newTestEnv(t, true)
	alice, _ := env.register(t, "alice", "a@x.com")
	adminToken := env.login(t, "admin", "admin123")

	status, body := env.do(t, http.MethodDelete, "/api/users/1", nil, adminToken)
	if status != http.StatusBadRequest || readAPIMessage(t, body) != "Admin accounts cannot be deleted" {
		t.Fatalf("expected admin delete to be refused, got %d: %s", status, body)
	}

	status, body = env.do(t, http.MethodDelete, "/api/users/"+itoa(numberField(t, alice, "id")), nil, adminToken)
	if status != http.StatusOK || readAPIMessage(t, body) != "User deleted successfully" {
		t.Fatalf("expected alice to be deleted, got %d: %s", status, body)
	}
}

func TestEnforcedRecordsArePinnedToOwner(t *testing.T) {
	env := newTestEnv(t, true)
	alice, aliceToken := env.register(t, "alice", "a@x.com")
	bob, bobToken := env.register(t, "bob", "b@x.com")
	aliceID := numberField(t, alice, "id")
	bobID := numberField(t, bob, "id")

	status, body := env.do(t, http.MethodPost, "/api/symptoms", symptomPayload(aliceID, 2), aliceToken)
	if status != http.StatusCreated {
		t.Fatalf("expected alice to log her own symptom, got %d: %s", status, body)
	}
	symptomID := numberField(t, decodeObject(t, body), "id")

	status, body = env.do(t, http.MethodPost, "/api/symptoms", symptomPayload(aliceID, 2), bobToken)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 when bob logs for alice, got %d: %s", status, body)
	}

	if status, body := env.do(t, http.MethodPost, "/api/symptoms", symptomPayload(bobID, 1), bobToken); status != http.StatusCreated {
		t.Fatalf("expected bob to log his own symptom, got %d: %s", status, body)
	}

	status, body = env.do(t, http.MethodGet, "/api/symptoms", nil, aliceToken)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	listed := decodeList(t, body)
	if len(listed) != 1 || numberField(t, listed[0], "userId") != aliceID {
		t.Fatalf("expected alice to see only her symptom, got %s", body)
	}

	status, body = env.do(t, http.MethodGet, "/api/symptoms?userId="+itoa(bobID), nil, aliceToken)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign filter, got %d: %s", status, body)
	}

	status, body = env.do(t, http.MethodDelete, "/api/symptoms/"+itoa(symptomID), nil, bobToken)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 when bob deletes alice's symptom, got %d: %s", status, body)
	}

	adminToken := env.login(t, "admin", "admin123")
	status, body = env.do(t, http.MethodGet, "/api/symptoms", nil, adminToken)
	if status != http.StatusOK || len(decodeList(t, body)) != 2 {
		t.Fatalf("expected admin to see every symptom, got %d: %s", status, body)
	}

	status, body = env.do(t, http.MethodDelete, "/api/symptoms/"+itoa(symptomID), nil, aliceToken)
	if status != http.StatusOK {
		t.Fatalf("expected alice to delete her symptom, got %d: %s", status, body)
	}
}

func TestEnforcedAppointmentsNeedToken(t *testing.T) {
	env := newTestEnv(t, true)
	alice, aliceToken := env.register(t, "alice", "a@x.com")

	status, body := env.do(t, http.MethodPost, "/api/appointments", appointmentPayload(numberField(t, alice, "id")), "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d: %s", status, body)
	}

	status, body = env.do(t, http.MethodPost, "/api/appointments", appointmentPayload(numberField(t, alice, "id")), aliceToken)
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", status, body)
	}

	status, body = env.do(t, http.MethodDelete, "/api/appointments/99", nil, aliceToken)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for missing appointment, got %d: %s", status, body)
	}
}

func TestEnforcedContactsStayPublicForSubmission(t *testing.T) {
	env := newTestEnv(t, true)
	_, aliceToken := env.register(t, "alice", "a@x.com")

	status, body := env.do(t, http.MethodPost, "/api/contacts", map[string]string{
		"name": "Bob", "email": "bob@example.com", "subject": "Hi", "message": "Hello",
	}, "")
	if status != http.StatusCreated {
		t.Fatalf("expected anonymous contact submission, got %d: %s", status, body)
	}

	status, body = env.do(t, http.MethodGet, "/api/contacts", nil, aliceToken)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d: %s", status, body)
	}

	status, body = env.do(t, http.MethodGet, "/api/contacts", nil, env.login(t, "admin", "admin123"))
	if status != http.StatusOK || len(decodeList(t, body)) != 1 {
		t.Fatalf("expected admin to read the contact, got %d: %s", status, body)
	}
}

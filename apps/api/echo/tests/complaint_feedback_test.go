package tests

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/complaint"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/feedback"
)

func Test_complaintApi_submit(t *testing.T) {
	app := setup(t)
	gym, _ := app.createUser(t, "Owner", "owner@gym.test")
	app.mailSvc.Reset()

	fields := map[string]string{
		"gymId":       gym.ID,
		"memberName":  "Ann",
		"subject":     "Broken treadmill",
		"description": "The second treadmill stops after a minute.",
		"category":    "Equipment",
	}

	rec := app.doMultipart(t, "/complaints", fields, map[string][]byte{"treadmill.png": pngHeader})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c complaint.Complaint
	decode(t, rec, &c)
	assert.Equal(t, gym.ID, c.User)
	assert.Equal(t, complaint.CategoryEquipment, c.Category)
	assert.Equal(t, complaint.StatusPending, c.Status)
	require.Len(t, c.Evidence, 1)
	assert.Equal(t, "image/png", c.Evidence[0].MimeType)
	assert.Equal(t, "treadmill.png", c.Evidence[0].Filename)
	assert.True(t, strings.HasPrefix(c.Evidence[0].URL, "/uploads/"), c.Evidence[0].URL)

	// the evidence is served back
	rec = app.do(t, http.MethodGet, c.Evidence[0].URL, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	sent := app.mailSvc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "owner@gym.test", sent[0].To[0].Address)
	assert.Contains(t, sent[0].TextContent, "Broken treadmill")

	// JSON submissions carry no evidence
	rec = app.do(t, http.MethodPost, "/complaints", "", fields)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, &c)
	assert.NotNil(t, c.Evidence)
	assert.Empty(t, c.Evidence)
}

func Test_complaintApi_submitErrors(t *testing.T) {
	app := setup(t)
	gym, _ := app.createUser(t, "Owner", "owner@gym.test")
	valid := func(overrides map[string]string) map[string]string {
		fields := map[string]string{
			"gymId":       gym.ID,
			"memberName":  "Ann",
			"subject":     "Cold showers",
			"description": "No hot water since Monday.",
		}
		for k, v := range overrides {
			fields[k] = v
		}
		return fields
	}

	tests := []struct {
		name      string
		fields    map[string]string
		files     map[string][]byte
		wantField string
	}{
		{"unknown gym", valid(map[string]string{"gymId": "unknown"}), nil, "gymId"},
		{"missing subject", valid(map[string]string{"subject": "  "}), nil, "subject"},
		{"bad category", valid(map[string]string{"category": "music"}), nil, "category"},
		{"bad email", valid(map[string]string{"memberEmail": "ann"}), nil, "memberEmail"},
		{"not a media file", valid(nil), map[string][]byte{"notes.txt": []byte("plain text notes")}, "evidence"},
		{"too many files", valid(nil), map[string][]byte{
			"1.png": pngHeader, "2.png": pngHeader, "3.png": pngHeader, "4.png": pngHeader, "5.png": pngHeader, "6.png": pngHeader,
		}, "evidence"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.doMultipart(t, "/complaints", tt.fields, tt.files)
			res := requireError(t, rec, http.StatusBadRequest)
			assert.Contains(t, res.Fields, tt.wantField)
		})
	}
}

func Test_complaintApi_manage(t *testing.T) {
	app := setup(t)
	gym, token := app.createUser(t, "Owner", "owner@gym.test")
	_, otherToken := app.createUser(t, "Other", "other@gym.test")

	rec := app.do(t, http.MethodPost, "/complaints", "", map[string]string{
		"gymId": gym.ID, "memberName": "Ann", "subject": "Noise", "description": "Music too loud.", "category": "staff",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c complaint.Complaint
	decode(t, rec, &c)
	path := "/complaints/" + c.ID

	rec = app.do(t, http.MethodGet, "/complaints", "", nil)
	requireError(t, rec, http.StatusUnauthorized)

	rec = app.do(t, http.MethodGet, "/complaints?status=pending", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []complaint.Complaint
	decode(t, rec, &list)
	require.Len(t, list, 1)

	rec = app.do(t, http.MethodGet, "/complaints", otherToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &list)
	assert.Empty(t, list)

	rec = app.do(t, http.MethodGet, path, otherToken, nil)
	requireError(t, rec, http.StatusUnauthorized)

	rec = app.do(t, http.MethodPatch, path, token, map[string]string{"status": "closed"})
	res := requireError(t, rec, http.StatusBadRequest)
	assert.Contains(t, res.Fields, "status")

	rec = app.do(t, http.MethodPatch, path, token, map[string]string{"status": "resolved", "response": "Volume capped."})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &c)
	assert.Equal(t, complaint.StatusResolved, c.Status)
	assert.Equal(t, "Volume capped.", c.Response)

	rec = app.do(t, http.MethodGet, "/complaints?status=pending", token, nil)
	decode(t, rec, &list)
	assert.Empty(t, list)

	rec = app.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = app.do(t, http.MethodGet, path, token, nil)
	requireError(t, rec, http.StatusNotFound)
}

func Test_feedbackApi(t *testing.T) {
	app := setup(t)
	gym, token := app.createUser(t, "Owner", "owner@gym.test")
	app.mailSvc.Reset()

	for _, fb := range []map[string]string{
		{"gymId": gym.ID, "memberName": "Ann", "rating": "5", "message": "Great trainers", "category": "trainer"},
		{"gymId": gym.ID, "memberName": "Bob", "rating": "4"},
		{"gymId": gym.ID, "memberName": "Cid", "rating": "2", "category": "facility"},
	} {
		rec := app.doMultipart(t, "/feedback", fb, nil)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	assert.Len(t, app.mailSvc.SentMessages(), 3)

	rec := app.doMultipart(t, "/feedback", map[string]string{"gymId": gym.ID, "memberName": "Dee", "rating": "6"}, nil)
	res := requireError(t, rec, http.StatusBadRequest)
	assert.Contains(t, res.Fields, "rating")

	rec = app.do(t, http.MethodGet, "/feedback?category=general", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var list []feedback.Feedback
	decode(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Bob", list[0].MemberName)
	assert.Equal(t, feedback.StatusNew, list[0].Status)

	rec = app.do(t, http.MethodGet, "/feedback/summary", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var sum feedback.Summary
	decode(t, rec, &sum)
	assert.Equal(t, 3, sum.Count)
	assert.InDelta(t, 11.0/3, sum.AverageRating, 1e-9)
	assert.Equal(t, map[int]int{1: 0, 2: 1, 3: 0, 4: 1, 5: 1}, sum.ByRating)

	rec = app.do(t, http.MethodPatch, "/feedback/"+list[0].ID, token, map[string]string{"status": "reviewed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var fb feedback.Feedback
	decode(t, rec, &fb)
	assert.Equal(t, feedback.StatusReviewed, fb.Status)

	rec = app.do(t, http.MethodDelete, "/feedback/"+fb.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

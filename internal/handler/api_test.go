package handler_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/Youseb010/mada-server/internal/handler"
	"github.com/Youseb010/mada-server/internal/model"
	"github.com/Youseb010/mada-server/internal/router"
	"github.com/Youseb010/mada-server/internal/service"
	"github.com/Youseb010/mada-server/internal/store"
)

func TestMain(m *testing.M) {
	// Collectors register against the default registry once for all tests.
	handler.InitMetrics(nil)
	os.Exit(m.Run())
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	if err := st.SeedIfEmpty(); err != nil {
		t.Fatalf("SeedIfEmpty: %v", err)
	}

	cache := service.NewCacheService("")
	catalogSvc := service.NewCatalogService(st, cache)

	app := fiber.New()
	h := &router.Handlers{
		Catalog: handler.NewCatalogHandler(catalogSvc),
		Channel: handler.NewChannelHandler(catalogSvc),
		Video:   handler.NewVideoHandler(catalogSvc),
		Stats:   handler.NewStatsHandler(service.NewStatsService(st)),
		Health:  handler.NewHealthHandler(st, nil),
		Export:  handler.NewExportHandler(st.Path()),
	}
	router.Setup(app, h, "*")
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("%s %s: body is not a JSON object: %v\n%s", method, path, err, raw)
	}
	return resp.StatusCode, doc
}

func createVideo(t *testing.T, app *fiber.App, body string) model.Video {
	t.Helper()
	status, doc := doJSON(t, app, "POST", "/api/videos", body)
	if status != fiber.StatusOK {
		t.Fatalf("create video status = %d, want 200", status)
	}
	var v model.Video
	if err := json.Unmarshal(doc["video"], &v); err != nil {
		t.Fatalf("decode video: %v", err)
	}
	return v
}

func TestInit_ReturnsSeededCatalog(t *testing.T) {
	app := newTestApp(t)

	status, doc := doJSON(t, app, "GET", "/api/init", "")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	var channels []model.Channel
	if err := json.Unmarshal(doc["channels"], &channels); err != nil {
		t.Fatalf("decode channels: %v", err)
	}
	if len(channels) != 1 || channels[0].Name != store.DefaultChannelName {
		t.Errorf("channels = %v, want the single seeded channel", channels)
	}

	var videos []model.Video
	if err := json.Unmarshal(doc["videos"], &videos); err != nil {
		t.Fatalf("decode videos: %v", err)
	}
	if videos == nil || len(videos) != 0 {
		t.Errorf("videos = %v, want empty array", videos)
	}
}

func TestCreateChannel(t *testing.T) {
	app := newTestApp(t)

	status, doc := doJSON(t, app, "POST", "/api/channels", `{"name":"Tech","image":"http://x/i.png"}`)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	var ch model.Channel
	if err := json.Unmarshal(doc["channel"], &ch); err != nil {
		t.Fatalf("decode channel: %v", err)
	}
	if ch.ID == "" || ch.Name != "Tech" || ch.Image != "http://x/i.png" {
		t.Errorf("channel = %+v", ch)
	}
}

func TestCreateVideo_WireFormat(t *testing.T) {
	app := newTestApp(t)

	v := createVideo(t, app, `{"video_url":"http://x/v1","cloudinary_public_id":"abc","duration":42.5}`)

	if v.VideoURL != "http://x/v1" {
		t.Errorf("video_url = %q", v.VideoURL)
	}
	if v.CloudinaryPublicID == nil || *v.CloudinaryPublicID != "abc" {
		t.Errorf("cloudinary_public_id = %v, want abc", v.CloudinaryPublicID)
	}
	if v.Duration == nil || *v.Duration != 42.5 {
		t.Errorf("duration = %v, want 42.5", v.Duration)
	}
	if v.Title != model.UntitledPlaceholder {
		t.Errorf("title = %q, want untitled placeholder", v.Title)
	}
}

func TestGetVideo_NotFound(t *testing.T) {
	app := newTestApp(t)

	status, doc := doJSON(t, app, "GET", "/api/videos/missing-id", "")
	if status != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if _, ok := doc["error"]; !ok {
		t.Error("404 response missing error body")
	}
}

func TestCounterEndpoints(t *testing.T) {
	app := newTestApp(t)
	v := createVideo(t, app, `{"video_url":"http://x/v1"}`)

	tests := []struct {
		action string
		field  string
	}{
		{"view", "views"},
		{"like", "likes"},
		{"dislike", "dislikes"},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			path := fmt.Sprintf("/api/videos/%s/%s", v.ID, tt.action)
			status, doc := doJSON(t, app, "POST", path, "")
			if status != fiber.StatusOK {
				t.Fatalf("status = %d, want 200", status)
			}
			var count int
			if err := json.Unmarshal(doc[tt.field], &count); err != nil {
				t.Fatalf("decode %s: %v", tt.field, err)
			}
			if count != 1 {
				t.Errorf("%s = %d, want 1", tt.field, count)
			}

			status, _ = doJSON(t, app, "POST", "/api/videos/missing-id/"+tt.action, "")
			if status != fiber.StatusNotFound {
				t.Errorf("unknown id status = %d, want 404", status)
			}
		})
	}
}

func TestViewsAccumulateAcrossRequests(t *testing.T) {
	app := newTestApp(t)
	v := createVideo(t, app, `{"video_url":"http://x/v1"}`)

	for i := 0; i < 3; i++ {
		status, _ := doJSON(t, app, "POST", "/api/videos/"+v.ID+"/view", "")
		if status != fiber.StatusOK {
			t.Fatalf("view %d status = %d", i+1, status)
		}
	}

	status, doc := doJSON(t, app, "GET", "/api/videos/"+v.ID, "")
	if status != fiber.StatusOK {
		t.Fatalf("get status = %d", status)
	}
	var got model.Video
	if err := json.Unmarshal(doc["video"], &got); err != nil {
		t.Fatalf("decode video: %v", err)
	}
	if got.Views != 3 || got.Likes != 0 || len(got.Comments) != 0 {
		t.Errorf("video = views %d likes %d comments %d, want 3/0/0",
			got.Views, got.Likes, len(got.Comments))
	}
}

func TestAddComment(t *testing.T) {
	app := newTestApp(t)
	v := createVideo(t, app, `{"video_url":"http://x/v1"}`)

	status, doc := doJSON(t, app, "POST", "/api/videos/"+v.ID+"/comment", `{"author":"sam","text":"great"}`)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var comment model.Comment
	if err := json.Unmarshal(doc["comment"], &comment); err != nil {
		t.Fatalf("decode comment: %v", err)
	}
	if comment.ID == "" || comment.Author != "sam" || comment.Text != "great" {
		t.Errorf("comment = %+v", comment)
	}
	if comment.Date.IsZero() {
		t.Error("comment date not set")
	}
}

func TestAddComment_Validation(t *testing.T) {
	app := newTestApp(t)
	v := createVideo(t, app, `{"video_url":"http://x/v1"}`)

	tests := []struct {
		name string
		body string
	}{
		{"missing author", `{"text":"hi"}`},
		{"missing text", `{"author":"sam"}`},
		{"empty fields", `{"author":"","text":""}`},
		{"whitespace only", `{"author":"  ","text":"hi"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := doJSON(t, app, "POST", "/api/videos/"+v.ID+"/comment", tt.body)
			if status != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
		})
	}

	// Unknown video with a valid body is 404, not 400.
	status, _ := doJSON(t, app, "POST", "/api/videos/missing-id/comment", `{"author":"sam","text":"hi"}`)
	if status != fiber.StatusNotFound {
		t.Errorf("unknown video status = %d, want 404", status)
	}
}

func TestSearch(t *testing.T) {
	app := newTestApp(t)
	createVideo(t, app, `{"video_url":"http://x/v1","title":"Go Tutorial"}`)
	createVideo(t, app, `{"video_url":"http://x/v2","description":"cooking pasta"}`)

	status, doc := doJSON(t, app, "GET", "/api/search?q=TUTORIAL", "")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var videos []model.Video
	if err := json.Unmarshal(doc["videos"], &videos); err != nil {
		t.Fatalf("decode videos: %v", err)
	}
	if len(videos) != 1 || videos[0].Title != "Go Tutorial" {
		t.Errorf("results = %v, want only the tutorial", videos)
	}

	// Empty query returns everything.
	status, doc = doJSON(t, app, "GET", "/api/search", "")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if err := json.Unmarshal(doc["videos"], &videos); err != nil {
		t.Fatalf("decode videos: %v", err)
	}
	if len(videos) != 2 {
		t.Errorf("results = %d, want 2", len(videos))
	}
}

func TestDeleteVideo(t *testing.T) {
	app := newTestApp(t)
	v := createVideo(t, app, `{"video_url":"http://x/v1"}`)

	status, doc := doJSON(t, app, "DELETE", "/api/videos/"+v.ID, "")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var ok bool
	if err := json.Unmarshal(doc["ok"], &ok); err != nil || !ok {
		t.Errorf("ok = %v (%v), want true", ok, err)
	}

	// Deleting again still succeeds.
	status, _ = doJSON(t, app, "DELETE", "/api/videos/"+v.ID, "")
	if status != fiber.StatusOK {
		t.Errorf("repeat delete status = %d, want 200", status)
	}

	status, _ = doJSON(t, app, "GET", "/api/videos/"+v.ID, "")
	if status != fiber.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", status)
	}
}

func TestStatsEndpoint(t *testing.T) {
	app := newTestApp(t)
	v := createVideo(t, app, `{"video_url":"http://x/v1"}`)
	doJSON(t, app, "POST", "/api/videos/"+v.ID+"/view", "")

	status, doc := doJSON(t, app, "GET", "/api/stats", "")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var totalVideos, totalViews int
	if err := json.Unmarshal(doc["totalVideos"], &totalVideos); err != nil {
		t.Fatalf("decode totalVideos: %v", err)
	}
	if err := json.Unmarshal(doc["totalViews"], &totalViews); err != nil {
		t.Fatalf("decode totalViews: %v", err)
	}
	if totalVideos != 1 || totalViews != 1 {
		t.Errorf("stats = %d videos / %d views, want 1/1", totalVideos, totalViews)
	}
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(t)

	status, doc := doJSON(t, app, "GET", "/health/live", "")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var s string
	if err := json.Unmarshal(doc["status"], &s); err != nil || s != "ok" {
		t.Errorf("status field = %q (%v), want ok", s, err)
	}
}

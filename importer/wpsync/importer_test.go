package wpsync

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/harborview-realty/estate_api/model"
	"github.com/harborview-realty/estate_api/services/repositories"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Property{}))
	return db
}

// catalogServer simulates the remote listing API: taxonomies, a paginated
// properties listing with count headers, and per-record detail.
type catalogServer struct {
	pages        map[int][]map[string]interface{}
	records      map[int]map[string]interface{}
	failPages    map[int]bool
	listingCalls int
}

func (s *catalogServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case strings.HasPrefix(path, "/property-types"),
			strings.HasPrefix(path, "/property-statuses"),
			strings.HasPrefix(path, "/property-cities"):
			writeJSON(w, []map[string]interface{}{
				{"id": 11, "name": "Condo"},
				{"id": 21, "name": "For Sale"},
				{"id": 31, "name": "Anytown"},
			})
		case path == "/properties":
			s.listingCalls++
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			if s.failPages[page] && s.listingCalls > 1 {
				// The first listing call only reads headers; failures are
				// simulated on the data fetches that follow.
				http.Error(w, "server error", http.StatusInternalServerError)
				return
			}
			w.Header().Set("x-wp-totalpages", strconv.Itoa(len(s.pages)))
			total := 0
			for _, p := range s.pages {
				total += len(p)
			}
			w.Header().Set("x-wp-total", strconv.Itoa(total))
			writeJSON(w, s.pages[page])
		case strings.HasPrefix(path, "/properties/"):
			id, _ := strconv.Atoi(strings.TrimPrefix(path, "/properties/"))
			rec, ok := s.records[id]
			if !ok {
				http.NotFound(w, r)
				return
			}
			writeJSON(w, rec)
		default:
			http.NotFound(w, r)
		}
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func wpRecord(id int, slug, title string) map[string]interface{} {
	return map[string]interface{}{
		"id":    id,
		"slug":  slug,
		"date":  "2024-01-10T08:00:00",
		"title": map[string]string{"rendered": title},
		"property_meta": map[string]interface{}{
			"REAL_HOMES_property_address": fmt.Sprintf("%d Main St, Anytown, Orange County, CA, 92660, USA", id),
			"REAL_HOMES_property_price":   "500000",
		},
	}
}

func newTestImporter(t *testing.T, srv *catalogServer) (*Importer, *repositories.PropertyRepository) {
	t.Helper()
	server := httptest.NewServer(srv.handler())
	t.Cleanup(server.Close)

	repo := repositories.NewPropertyRepository(openTestDB(t))
	importer := NewImporter(NewClient(server.URL), repo)
	importer.sleep = func(time.Duration) {}
	return importer, repo
}

func TestImportSingleRecord(t *testing.T) {
	srv := &catalogServer{
		pages: map[int][]map[string]interface{}{
			1: {wpRecord(77, "", "Sunny Villa")},
		},
	}
	importer, repo := newTestImporter(t, srv)

	summary, err := importer.Run()
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Errors)

	property, err := repo.GetByWpID(77)
	require.NoError(t, err)
	require.NotNil(t, property)
	assert.Equal(t, "property-77", property.Slug)
	assert.Equal(t, "Sunny Villa", property.Title)
	assert.Equal(t, 77, *property.WpID)
	assert.Equal(t, "92660", property.ZipCode)
	assert.Equal(t, "Orange County", property.County)
}

func TestImportIsIdempotent(t *testing.T) {
	srv := &catalogServer{
		pages: map[int][]map[string]interface{}{
			1: {
				wpRecord(1, "first-home", "First Home"),
				wpRecord(2, "second-home", "Second Home"),
			},
		},
	}
	importer, repo := newTestImporter(t, srv)

	first, err := importer.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, first.Imported)

	second, err := importer.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 2, second.Skipped)
	assert.Equal(t, 0, second.Errors)

	var count int64
	require.NoError(t, repo.DB().Model(&model.Property{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestImportBadPageDoesNotAbortRun(t *testing.T) {
	srv := &catalogServer{
		pages: map[int][]map[string]interface{}{
			1: {wpRecord(1, "page-one-home", "Page One Home")},
			2: {wpRecord(2, "page-two-home", "Page Two Home")},
		},
		failPages: map[int]bool{1: true},
	}
	importer, repo := newTestImporter(t, srv)

	summary, err := importer.Run()
	require.NoError(t, err)

	// Page 1 failed and yielded zero records; page 2 still imported.
	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 0, summary.Errors)

	property, err := repo.GetByWpID(2)
	require.NoError(t, err)
	require.NotNil(t, property)

	missing, err := repo.GetByWpID(1)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestImportRecordErrorDoesNotAbortPage(t *testing.T) {
	srv := &catalogServer{
		pages: map[int][]map[string]interface{}{
			1: {
				wpRecord(1, "shared-slug", "First"),
				wpRecord(2, "shared-slug", "Duplicate Slug"),
				wpRecord(3, "third-home", "Third"),
			},
		},
	}
	importer, _ := newTestImporter(t, srv)

	summary, err := importer.Run()
	require.NoError(t, err)

	// The slug collision fails one record; the rest of the page proceeds.
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 1, summary.Errors)
}

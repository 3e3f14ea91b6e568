package wpsync

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview-realty/estate_api/model"
	"github.com/harborview-realty/estate_api/services/repositories"
)

func seedProperty(t *testing.T, repo *repositories.PropertyRepository, slug string, wpID *int, images []string) *model.Property {
	t.Helper()
	property := &model.Property{
		Title:  slug,
		Slug:   slug,
		Status: "sold",
		WpID:   wpID,
	}
	if images != nil {
		require.NoError(t, property.SetImageURLs(images))
	}
	created, err := repo.Create(property)
	require.NoError(t, err)
	return created
}

func intPtr(v int) *int { return &v }

func TestPatchBackfillsMissingImages(t *testing.T) {
	srv := &catalogServer{
		records: map[int]map[string]interface{}{
			10: {
				"id": 10,
				"property_meta": map[string]interface{}{
					"REAL_HOMES_property_images": []map[string]interface{}{
						{"full_url": "https://cdn/one.jpg"},
						{"url": "https://cdn/two.jpg"},
						{"file": "2024/three.jpg"},
					},
				},
			},
			20: {
				"id":            20,
				"property_meta": map[string]interface{}{},
			},
		},
	}
	server := httptest.NewServer(srv.handler())
	t.Cleanup(server.Close)

	repo := repositories.NewPropertyRepository(openTestDB(t))

	withImages := seedProperty(t, repo, "has-images", intPtr(1), []string{"https://cdn/existing.jpg"})
	needsImages := seedProperty(t, repo, "needs-images", intPtr(10), nil)
	remoteEmpty := seedProperty(t, repo, "remote-empty", intPtr(20), nil)
	noRemoteID := seedProperty(t, repo, "no-remote-id", nil, nil)
	remoteGone := seedProperty(t, repo, "remote-gone", intPtr(99), nil)

	patcher := NewPatcher(NewClient(server.URL), repo)
	patcher.sleep = func(time.Duration) {}

	summary, err := patcher.Run()
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Candidates)
	assert.Equal(t, 1, summary.Patched)
	assert.Equal(t, 2, summary.NoImages)
	assert.Equal(t, 1, summary.Errors)

	patched, err := repo.GetByID(needsImages.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://cdn/one.jpg",
		"https://cdn/two.jpg",
		deriveUploadBase(server.URL) + "2024/three.jpg",
	}, patched.ImageURLs())

	// Other records keep whatever they had.
	untouched, err := repo.GetByID(withImages.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/existing.jpg"}, untouched.ImageURLs())

	for _, p := range []*model.Property{remoteEmpty, noRemoteID, remoteGone} {
		got, err := repo.GetByID(p.ID)
		require.NoError(t, err)
		assert.Empty(t, got.ImageURLs())
	}
}

func TestPatchRerunExcludesPatchedRecords(t *testing.T) {
	srv := &catalogServer{
		records: map[int]map[string]interface{}{
			10: {
				"id": 10,
				"property_meta": map[string]interface{}{
					"REAL_HOMES_property_images": []map[string]interface{}{
						{"full_url": "https://cdn/one.jpg"},
					},
				},
			},
		},
	}
	server := httptest.NewServer(srv.handler())
	t.Cleanup(server.Close)

	repo := repositories.NewPropertyRepository(openTestDB(t))
	seedProperty(t, repo, "needs-images", intPtr(10), nil)

	patcher := NewPatcher(NewClient(server.URL), repo)
	patcher.sleep = func(time.Duration) {}

	first, err := patcher.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, first.Patched)

	second, err := patcher.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, second.Candidates)
	assert.Equal(t, 0, second.Patched)
}

package wpsync

import (
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"github.com/harborview-realty/estate_api/model"
	"github.com/harborview-realty/estate_api/services/repositories"
)

const (
	recordDelay = 200 * time.Millisecond
	patchLimit  = 300
)

type PatchSummary struct {
	Candidates int
	Patched    int
	NoImages   int
	Errors     int
}

// Patcher back-fills image lists for records imported without them. It
// only ever touches the image field, so re-running is safe: a record
// that already holds images is excluded from the working set up front.
type Patcher struct {
	client *Client
	repo   *repositories.PropertyRepository

	sleep func(time.Duration)
}

func NewPatcher(client *Client, repo *repositories.PropertyRepository) *Patcher {
	return &Patcher{
		client: client,
		repo:   repo,
		sleep:  time.Sleep,
	}
}

func (p *Patcher) Run() (*PatchSummary, error) {
	log.Info("Finding properties without image data")

	all, err := p.repo.ListAll(patchLimit)
	if err != nil {
		return nil, err
	}

	var candidates []model.Property
	for _, property := range all {
		if len(property.ImageURLs()) == 0 {
			candidates = append(candidates, property)
		}
	}
	log.Infof("Total: %d | Need images: %d", len(all), len(candidates))

	summary := &PatchSummary{Candidates: len(candidates)}

	for i := range candidates {
		p.patchRecord(&candidates[i], summary)
		p.sleep(recordDelay)
	}

	log.Infof("Done. Patched: %d | No images: %d | Errors: %d", summary.Patched, summary.NoImages, summary.Errors)
	return summary, nil
}

func (p *Patcher) patchRecord(property *model.Property, summary *PatchSummary) {
	if property.WpID == nil {
		log.Infof("SKIP %q, no remote id", property.Title)
		summary.NoImages++
		return
	}

	rec, err := p.client.FetchRecord(*property.WpID)
	if err != nil {
		log.WithError(err).Warnf("FAIL remote id %d", *property.WpID)
		summary.Errors++
		return
	}

	urls := patchImageURLs(rec.Meta.Images, p.client.UploadBase())
	if len(urls) == 0 {
		log.Infof("NONE %q, remote has no images", property.Title)
		summary.NoImages++
		return
	}

	raw, err := sonic.Marshal(urls)
	if err == nil {
		err = p.repo.UpdateImageURLs(property.ID, raw)
	}
	if err != nil {
		log.WithError(err).Errorf("Error patching %s", property.ID)
		summary.Errors++
		return
	}

	summary.Patched++
	log.Infof("OK %q, %d images", property.Title, len(urls))
}

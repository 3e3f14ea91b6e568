package wpsync

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/harborview-realty/estate_api/services/repositories"
)

const pageDelay = 300 * time.Millisecond

// ImportSummary reports the outcome of one import run. The run completes
// regardless of per-record errors; only top-level failures abort it.
type ImportSummary struct {
	Total    int
	Imported int
	Skipped  int
	Errors   int
}

// Importer pulls the full remote catalog and inserts records not already
// present locally, keyed by the remote id.
type Importer struct {
	client *Client
	repo   *repositories.PropertyRepository

	// Injectable so tests run without real sleeping.
	sleep func(time.Duration)
}

func NewImporter(client *Client, repo *repositories.PropertyRepository) *Importer {
	return &Importer{
		client: client,
		repo:   repo,
		sleep:  time.Sleep,
	}
}

func (im *Importer) Run() (*ImportSummary, error) {
	log.Info("Loading taxonomy terms")
	tax, err := im.fetchTaxonomies()
	if err != nil {
		return nil, err
	}
	log.Infof("Types: %d | Statuses: %d | Cities: %d", len(tax.Types), len(tax.Statuses), len(tax.Cities))

	totalPages, total, err := im.client.FetchPageInfo()
	if err != nil {
		return nil, err
	}
	log.Infof("Found %d properties across %d pages", total, totalPages)

	mapper := NewMapper(tax, im.client.UploadBase())
	summary := &ImportSummary{Total: total}

	for page := 1; page <= totalPages; page++ {
		log.Infof("Fetching page %d/%d", page, totalPages)

		records, err := im.client.FetchPage(page)
		if err != nil {
			// A bad page never aborts the run.
			log.WithError(err).Warnf("Page %d fetch failed, treating as empty", page)
			records = nil
		}

		for i := range records {
			im.importRecord(mapper, &records[i], summary)
		}

		im.sleep(pageDelay)
	}

	log.Infof("Done. Imported: %d | Skipped: %d | Errors: %d", summary.Imported, summary.Skipped, summary.Errors)
	return summary, nil
}

func (im *Importer) importRecord(mapper *Mapper, rec *Record, summary *ImportSummary) {
	// The existence check and the insert are separate operations. The
	// unique index on wp_id is the backstop against overlapping runs.
	existing, err := im.repo.GetByWpID(rec.ID)
	if err != nil {
		summary.Errors++
		log.WithError(err).Errorf("Error on remote id %d", rec.ID)
		return
	}
	if existing != nil {
		summary.Skipped++
		return
	}

	property, err := mapper.Map(rec)
	if err == nil {
		_, err = im.repo.Create(property)
	}
	if err != nil {
		summary.Errors++
		log.WithError(err).Errorf("Error on remote id %d", rec.ID)
		return
	}

	summary.Imported++
	if summary.Imported%10 == 0 {
		log.Infof("Imported %d...", summary.Imported)
	}
}

func (im *Importer) fetchTaxonomies() (Taxonomies, error) {
	tax := Taxonomies{}
	var err error

	if tax.Types, err = im.client.FetchTaxonomy("property-types"); err != nil {
		return tax, fmt.Errorf("load taxonomies: %w", err)
	}
	if tax.Statuses, err = im.client.FetchTaxonomy("property-statuses"); err != nil {
		return tax, fmt.Errorf("load taxonomies: %w", err)
	}
	if tax.Cities, err = im.client.FetchTaxonomy("property-cities"); err != nil {
		return tax, fmt.Errorf("load taxonomies: %w", err)
	}
	return tax, nil
}

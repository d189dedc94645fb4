package tinsel

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"net/http"
	"sync"
	"time"

	// Photo URLs may serve any of the common web formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// LoadHandle controls one in-flight texture load. Cancelling is safe at any
// time; a cancelled load's result is never applied.
type LoadHandle struct {
	cancel context.CancelFunc
}

// Cancel aborts the load. The card keeps whatever image it already had.
func (h *LoadHandle) Cancel() {
	h.cancel()
}

type loadResult struct {
	cardID     string
	generation uint64
	img        image.Image
	err        error
}

// TextureLoader fetches and decodes photo textures off the frame thread.
// Fetching runs on one goroutine per load; results are queued and applied
// on the frame tick by Apply, so cards are only ever mutated on the frame
// thread. A load failure leaves its card textureless and never interrupts
// the frame loop.
type TextureLoader struct {
	client *http.Client

	mu      sync.Mutex
	results []loadResult
	wg      sync.WaitGroup
}

// NewTextureLoader creates a loader. client may be nil for a default with a
// sane timeout.
func NewTextureLoader(client *http.Client) *TextureLoader {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &TextureLoader{client: client}
}

// StartLoads begins a load for every card that has no image, no load in
// flight, and no latched failure. Fire-and-forget per card; call Apply each
// frame to drain results.
func (l *TextureLoader) StartLoads(set *CardSet) {
	gen := set.Generation()
	for _, card := range set.Cards() {
		if card.Image != nil || card.load != nil || card.loadFailed || card.URL == "" {
			continue
		}
		ctx, cancel := context.WithCancel(context.Background())
		card.load = &LoadHandle{cancel: cancel}
		l.wg.Add(1)
		go l.fetch(ctx, card.ID, card.URL, gen)
	}
}

// fetch downloads and decodes one image and queues the result.
func (l *TextureLoader) fetch(ctx context.Context, cardID, url string, generation uint64) {
	defer l.wg.Done()
	img, err := l.fetchImage(ctx, url)
	l.mu.Lock()
	l.results = append(l.results, loadResult{
		cardID:     cardID,
		generation: generation,
		img:        img,
		err:        err,
	})
	l.mu.Unlock()
}

func (l *TextureLoader) fetchImage(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("load texture %s: %w", url, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load texture %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("load texture %s: status %d", url, resp.StatusCode)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", url, err)
	}
	return img, nil
}

// Apply drains completed loads and attaches images to their cards. Called
// once per frame on the frame thread. Results whose generation no longer
// matches the set (the photo collection was replaced mid-load) are
// discarded rather than applied to a reused slot.
func (l *TextureLoader) Apply(set *CardSet) {
	l.mu.Lock()
	results := l.results
	l.results = nil
	l.mu.Unlock()

	for _, r := range results {
		if r.generation != set.Generation() {
			continue
		}
		card := set.ByID(r.cardID)
		if card == nil {
			continue
		}
		card.load = nil
		if r.err != nil {
			// A cancelled load may be retried; a genuine failure is
			// latched so the same broken URL is never fetched again.
			if !errors.Is(r.err, context.Canceled) {
				card.loadFailed = true
				log.Printf("[tinsel] texture %s: %v", r.cardID, r.err)
			}
			continue
		}
		card.Image = r.img
	}
}

// Wait blocks until every in-flight load has finished (succeeded, failed,
// or cancelled). Intended for tests and shutdown.
func (l *TextureLoader) Wait() {
	l.wg.Wait()
}

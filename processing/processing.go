package processing

import (
	"catalog/config"
	"catalog/db"
	"catalog/embedding"
	"catalog/models"
	"context"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

const batchSize = 50

var (
	wake = make(chan struct{}, 1)

	// OnIndexed is called after an image was sent to the embedding service
	OnIndexed func(imageID uint64)
)

// Trigger asks the processing loop to run a pass now (e.g. right after an upload)
func Trigger() {
	select {
	case wake <- struct{}{}:
	default:
	}
}

func indexImage(image *models.Image) error {
	if image.CaptionText() != "" {
		err := embedding.Index(embedding.IndexRequest{
			ImageID:  image.ID,
			Caption:  image.CaptionText(),
			Filename: image.Filename,
		})
		if err != nil {
			return err
		}
	}
	// Images without a caption have nothing to embed, they are skipped for good
	return models.MarkImageIndexed(db.Instance, image.ID, true)
}

// RunOnce sends every pending image to the embedding service once.
// Failed images stay pending for the next pass.
func RunOnce(ctx context.Context) (done, failed int) {
	var nDone, nFailed atomic.Int64
	lastID := uint64(0)
	for ctx.Err() == nil {
		images, err := models.PendingIndexImages(db.Instance, lastID, batchSize)
		if err != nil {
			log.Printf("processPending error: %v", err)
			break
		}
		if len(images) == 0 {
			break
		}
		g := errgroup.Group{}
		g.SetLimit(max(config.PROCESSING_WORKERS, 1))
		for i := range images {
			image := &images[i]
			g.Go(func() error {
				start := time.Now()
				if err := indexImage(image); err != nil {
					log.Printf("Index image %d error: %v", image.ID, err)
					nFailed.Add(1)
					return nil
				}
				log.Printf("Indexed image %d, time: %dms", image.ID, time.Since(start).Milliseconds())
				nDone.Add(1)
				if OnIndexed != nil {
					OnIndexed(image.ID)
				}
				return nil
			})
		}
		_ = g.Wait()
		lastID = images[len(images)-1].ID
	}
	return int(nDone.Load()), int(nFailed.Load())
}

// StartProcessing indexes new images every PROCESSING_INTERVAL seconds, or when triggered
func StartProcessing(ctx context.Context) {
	if !embedding.Enabled() {
		log.Print("Embedding service not configured, indexing disabled")
		return
	}
	interval := time.Duration(max(config.PROCESSING_INTERVAL, 1)) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		RunOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-wake:
		}
	}
}

// Reindex queues every image again and runs a single pass
func Reindex(ctx context.Context) (done, failed int, err error) {
	if _, err = models.ResetIndexed(db.Instance); err != nil {
		return 0, 0, err
	}
	done, failed = RunOnce(ctx)
	return done, failed, nil
}

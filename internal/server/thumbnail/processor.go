// Package thumbnail derives fixed-width renditions of uploaded images.
package thumbnail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/server/blobstore"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/files"
	"golang.org/x/sync/errgroup"
)

// Processor handles a single thumbnail job.
type Processor struct {
	files  files.Repository
	blobs  blobstore.Store
	widths []int
}

func NewProcessor(files files.Repository, blobs blobstore.Store, widths []int) *Processor {
	return &Processor{files: files, blobs: blobs, widths: widths}
}

// Process resolves the job's record and writes one rendition per width at
// <localPath>_<width>. A returned error means the job could not start; once
// the original is located every width gets its own outcome in the result.
func (p *Processor) Process(ctx context.Context, job models.ThumbnailJob) (models.ThumbnailResult, error) {
	result := models.ThumbnailResult{FileID: job.FileID}

	if job.FileID == "" {
		return result, common.ErrMissingFileID
	}
	if job.UserID == "" {
		return result, common.ErrMissingUserID
	}

	file, err := p.files.GetByIDAndUser(ctx, job.FileID, job.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return result, common.ErrFileNotFound
		}
		return result, fmt.Errorf("error loading file: %w", err)
	}
	if file.LocalPath == "" {
		return result, common.ErrFileNotFound
	}

	src, format, err := p.load(ctx, file.LocalPath)

	result.Outcomes = make([]models.ThumbnailOutcome, len(p.widths))
	for i, w := range p.widths {
		result.Outcomes[i] = models.ThumbnailOutcome{Width: w, Path: models.ThumbnailPath(file.LocalPath, w), Err: err}
	}
	if err != nil {
		return result, nil
	}

	var g errgroup.Group
	for i := range result.Outcomes {
		o := &result.Outcomes[i]
		g.Go(func() error {
			o.Err = p.render(ctx, src, format, o.Width, o.Path)
			return nil
		})
	}
	_ = g.Wait()

	return result, nil
}

func (p *Processor) load(ctx context.Context, path string) (image.Image, imaging.Format, error) {
	data, err := p.blobs.Get(ctx, path)
	if err != nil {
		return nil, 0, fmt.Errorf("read original: %w", err)
	}

	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("decode original: %w", err)
	}

	format, err := imaging.FormatFromExtension(name)
	if err != nil {
		return nil, 0, fmt.Errorf("unsupported format %q: %w", name, err)
	}

	return img, format, nil
}

func (p *Processor) render(ctx context.Context, src image.Image, format imaging.Format, width int, path string) error {
	dst := imaging.Resize(src, width, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dst, format); err != nil {
		return fmt.Errorf("encode %d: %w", width, err)
	}

	if err := p.blobs.Put(ctx, path, buf.Bytes()); err != nil {
		return fmt.Errorf("write %d: %w", width, err)
	}
	return nil
}

package ingest

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/resumeforge/resume-maker/internal/db"
	"github.com/resumeforge/resume-maker/internal/parsing"
	"github.com/resumeforge/resume-maker/internal/storage"
	"github.com/resumeforge/resume-maker/internal/types"
)

// Processor runs the parse stage for an uploaded resume: fetch the original
// file, extract its text, build structured sections, and persist the result.
// It is shared by the queue worker and by the server's inline fallback when
// no queue is configured.
type Processor struct {
	DB     *db.DB
	Store  *storage.Store
	Parser *parsing.Config
}

// NewProcessor creates a parse processor using the default heuristics.
func NewProcessor(database *db.DB, store *storage.Store) *Processor {
	return &Processor{
		DB:     database,
		Store:  store,
		Parser: parsing.DefaultConfig(),
	}
}

// Process parses one resume. The resume must already be in PARSING status.
// On success it moves to PARSED; on any failure it is marked ERROR and the
// error is returned so the caller can decide whether to requeue.
func (p *Processor) Process(ctx context.Context, resumeID uuid.UUID, storageKey, mime string) error {
	err := p.run(ctx, resumeID, storageKey, mime)
	if err != nil {
		log.Printf("[parse] Resume %s failed: %v", resumeID, err)
		if stErr := p.DB.SetStatus(ctx, resumeID, types.StatusError); stErr != nil {
			log.Printf("[parse] Resume %s: failed to mark ERROR: %v", resumeID, stErr)
		}
		return err
	}
	return nil
}

func (p *Processor) run(ctx context.Context, resumeID uuid.UUID, storageKey, mime string) error {
	data, contentType, err := p.Store.Download(ctx, storageKey)
	if err != nil {
		return fmt.Errorf("download %s: %w", storageKey, err)
	}
	if mime == "" {
		mime = contentType
	}

	text, err := ExtractText(mime, data)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("extracted text is empty")
	}

	sections := BuildSections(p.Parser, text)
	if err := p.DB.UpdateResumeData(ctx, resumeID, &sections, text); err != nil {
		return fmt.Errorf("persist parsed data: %w", err)
	}

	if err := p.DB.UpdateStatus(ctx, resumeID, types.StatusParsing, types.StatusParsed); err != nil {
		return fmt.Errorf("mark parsed: %w", err)
	}

	log.Printf("[parse] Resume %s parsed (%d bytes of text)", resumeID, len(text))
	return nil
}

// Package ingest is the import engine: it runs raw pasted text through
// format detection, parsing, and normalization, then commits the accepted
// candidates to the ledger as one atomic batch.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/codyde/payme/inference"
	"github.com/codyde/payme/ledger"
	"github.com/codyde/payme/models"
	"github.com/codyde/payme/normalize"
	"github.com/codyde/payme/parse"
)

// BatchResult reports one import back to the caller: how many records were
// committed and an itemized list of skipped records with reasons. A batch
// with some bad rows is still a success for the good rows.
type BatchResult struct {
	AcceptedCount int              `json:"accepted_count"`
	InsertedIDs   []int64          `json:"inserted_ids"`
	Errors        []parse.RowError `json:"errors"`
}

// ErrNoExtractor means the free-form inference path was requested but no
// extractor was configured at startup.
var ErrNoExtractor = errors.New("no extractor configured")

// Importer ties the parsing pipeline to the ledger store. The extractor is
// optional; without one the free-form inference path is unavailable.
type Importer struct {
	store     *ledger.Store
	extractor inference.Extractor
}

// New returns an Importer. extractor may be nil.
func New(store *ledger.Store, extractor inference.Extractor) *Importer {
	return &Importer{store: store, extractor: extractor}
}

// ImportText runs the deterministic path: detect shape, parse, normalize,
// and commit. A SchemaError or PersistenceError aborts the whole batch with
// no partial side effects; row-level errors are collected in the result.
func (imp *Importer) ImportText(ctx context.Context, owner, raw string, invoiceID *string) (*BatchResult, error) {
	res, err := parse.Batch(raw)
	if err != nil {
		return nil, err
	}

	ids, err := imp.store.InsertBatch(ctx, owner, invoiceID, res.Accepted)
	if err != nil {
		return nil, err
	}

	slog.Info("batch imported",
		"owner", owner, "format", res.Format.String(),
		"accepted", len(ids), "skipped", len(res.Errors))

	return &BatchResult{
		AcceptedCount: len(ids),
		InsertedIDs:   ids,
		Errors:        nonNil(res.Errors),
	}, nil
}

// ImportInferred runs the free-form path: delegate extraction to the
// external model, then re-validate every candidate field through the same
// normalizers used for deterministic parsing. Nothing the model produced is
// persisted unvalidated.
func (imp *Importer) ImportInferred(ctx context.Context, owner, raw string, invoiceID *string) (*BatchResult, error) {
	if imp.extractor == nil {
		return nil, ErrNoExtractor
	}

	cands, err := imp.extractor.Extract(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("extracting candidates: %w", err)
	}

	accepted, rowErrs := revalidate(cands)

	ids, err := imp.store.InsertBatch(ctx, owner, invoiceID, accepted)
	if err != nil {
		return nil, err
	}

	slog.Info("inferred batch imported",
		"owner", owner, "candidates", len(cands),
		"accepted", len(ids), "skipped", len(rowErrs))

	return &BatchResult{
		AcceptedCount: len(ids),
		InsertedIDs:   ids,
		Errors:        nonNil(rowErrs),
	}, nil
}

// ImportLines handles the ad hoc bulk paste of "name,purpose,amount" lines.
// date applies to every entry (YYYY-MM-DD) and defaults to today. Bad lines
// are skipped and reported like any other batch.
func (imp *Importer) ImportLines(ctx context.Context, owner, raw, date string, invoiceID *string) (*BatchResult, error) {
	when := time.Now().UTC().Truncate(24 * time.Hour)
	if date != "" {
		parsed, err := normalize.Date(date)
		if err != nil {
			return nil, err
		}
		when = parsed
	}

	var accepted []models.Candidate
	var rowErrs []parse.RowError
	for i, line := range strings.Split(raw, "\n") {
		lineNo := i + 1
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.SplitN(line, ",", 3)
		if len(fields) != 3 {
			rowErrs = append(rowErrs, parse.RowError{
				Row: lineNo, Raw: line, Reason: parse.ReasonRowParse,
				Detail: "expected name,purpose,amount",
			})
			continue
		}
		name := strings.TrimSpace(fields[0])
		purpose := strings.TrimSpace(fields[1])

		amount, err := normalize.Amount(fields[2])
		if err != nil {
			rowErrs = append(rowErrs, parse.RowError{
				Row: lineNo, Raw: line, Reason: parse.ReasonAmountParse, Detail: err.Error(),
			})
			continue
		}

		business := name
		if business == "" {
			business = normalize.Business(purpose)
		}
		accepted = append(accepted, models.Candidate{
			Date:        when,
			Description: purpose,
			Business:    business,
			Amount:      amount,
		})
	}

	ids, err := imp.store.InsertBatch(ctx, owner, invoiceID, accepted)
	if err != nil {
		return nil, err
	}

	slog.Info("bulk lines imported", "owner", owner, "accepted", len(ids), "skipped", len(rowErrs))

	return &BatchResult{
		AcceptedCount: len(ids),
		InsertedIDs:   ids,
		Errors:        nonNil(rowErrs),
	}, nil
}

// revalidate passes each inferred candidate through the field normalizers,
// skipping and reporting any that fail. Fields are checked left to right:
// date, then amount.
func revalidate(cands []inference.Candidate) ([]models.Candidate, []parse.RowError) {
	var accepted []models.Candidate
	var rowErrs []parse.RowError

	for i, c := range cands {
		raw := strings.TrimSpace(c.Date + " " + c.Description + " " + c.Amount)
		row := i + 1

		date, err := normalize.Date(c.Date)
		if err != nil {
			rowErrs = append(rowErrs, parse.RowError{
				Row: row, Raw: raw, Reason: parse.ReasonDateParse, Detail: err.Error(),
			})
			continue
		}
		amount, err := normalize.Amount(c.Amount)
		if err != nil {
			rowErrs = append(rowErrs, parse.RowError{
				Row: row, Raw: raw, Reason: parse.ReasonAmountParse, Detail: err.Error(),
			})
			continue
		}

		// The model's business label is advisory; an empty or missing one is
		// re-derived from the description.
		business := strings.TrimSpace(c.Business)
		if business == "" {
			business = normalize.Business(c.Description)
		}

		accepted = append(accepted, models.Candidate{
			Date:        date,
			Description: c.Description,
			Business:    business,
			Amount:      amount,
		})
	}
	return accepted, rowErrs
}

func nonNil(errs []parse.RowError) []parse.RowError {
	if errs == nil {
		return []parse.RowError{}
	}
	return errs
}

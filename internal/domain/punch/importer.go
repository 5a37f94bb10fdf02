package punch

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"payclock/internal/apperror"
	"payclock/internal/domain/roster"
)

// SheetCreator receives the reconciled weekly result for one employee. The
// timesheet domain implements it; the importer does not know what happens
// past the hand-off.
type SheetCreator interface {
	CreatePending(ctx context.Context, employee roster.Employee, weekEnding time.Time, importID string, rec ReconcileResult) (created bool, warning string, err error)
}

type Importer struct {
	punches   PunchStoreAPI
	batches   BatchStoreAPI
	roster    roster.StoreAPI
	sheets    SheetCreator
	skewHours int
	reconcile ReconcileConfig

	// Now is swappable for tests.
	Now func() time.Time
}

func NewImporter(punches PunchStoreAPI, batches BatchStoreAPI, rosterStore roster.StoreAPI, sheets SheetCreator, skewHours int, reconcile ReconcileConfig) *Importer {
	return &Importer{
		punches:   punches,
		batches:   batches,
		roster:    rosterStore,
		sheets:    sheets,
		skewHours: skewHours,
		reconcile: reconcile,
		Now:       time.Now,
	}
}

// Import runs the full pipeline for one punch-export file: parse, dedup,
// roster validation, batch creation, punch persistence, then reconciliation
// into pending timesheets for every matched employee. Duplicate and
// unmatched failures are recoverable; the caller re-invokes with override
// after human review. Parse failures persist nothing.
func (im *Importer) Import(ctx context.Context, file io.Reader, override bool) (ImportResult, error) {
	punches, err := ParseExport(file, im.skewHours)
	if err != nil {
		return ImportResult{}, err
	}

	fileHash := ContentHash(punches)
	weekEnding := DeriveWeekEnding(punches)

	prior, priorIndex, priorFound, err := im.batches.FindActiveByWeek(ctx, weekEnding)
	if err != nil {
		return ImportResult{}, err
	}
	if priorFound && prior.FileHash == fileHash && !override {
		return ImportResult{}, apperror.Newf(apperror.KindDuplicate, apperror.CodeDuplicateImport,
			"this file was already imported for week ending %s", weekEnding.Format("2006-01-02")).
			WithDetails(map[string]any{"priorImportId": prior.ImportID})
	}

	matched, unmatched, err := im.matchRoster(ctx, punches)
	if err != nil {
		return ImportResult{}, err
	}
	if len(unmatched) > 0 && !override {
		return ImportResult{}, apperror.Newf(apperror.KindValidation, apperror.CodeUnmatchedEmployees,
			"%d clock reference(s) have no roster match", len(unmatched)).
			WithDetails(map[string]any{"unmatchedRefs": unmatched})
	}

	importID := uuid.NewString()
	result := ImportResult{
		ImportID:         importID,
		WeekEnding:       weekEnding,
		TotalRecords:     len(punches),
		MatchedEmployees: len(matched),
		UnmatchedRefs:    unmatched,
	}

	if priorFound {
		prior.Status = BatchReplaced
		prior.ReplacedBy = importID
		if err := im.batches.UpdateAt(ctx, priorIndex, prior); err != nil {
			return ImportResult{}, err
		}
		result.ReplacedImportID = prior.ImportID
	}

	batch := ImportBatch{
		ImportID:         importID,
		FileHash:         fileHash,
		WeekEnding:       weekEnding,
		TotalRecords:     len(punches),
		MatchedEmployees: len(matched),
		Status:           BatchActive,
		CreatedAt:        im.Now(),
	}
	for _, ref := range unmatched {
		batch.UnmatchedRefs = append(batch.UnmatchedRefs, ref.ClockRef)
	}
	if err := im.batches.Append(ctx, batch); err != nil {
		return ImportResult{}, err
	}

	for i := range punches {
		punches[i].ImportID = importID
		if employee, ok := matched[punches[i].ClockRef]; ok {
			punches[i].EmployeeID = employee.ID
		}
	}
	if err := im.punches.AppendAll(ctx, punches); err != nil {
		return ImportResult{}, err
	}

	for _, employee := range sortedEmployees(matched) {
		var own []RawPunch
		for _, p := range punches {
			if p.EmployeeID == employee.ID {
				own = append(own, p)
			}
		}
		rec := Reconcile(own, im.reconcile)
		created, warning, err := im.sheets.CreatePending(ctx, employee, weekEnding, importID, rec)
		if err != nil {
			return result, err
		}
		if created {
			result.TimesheetsCreated++
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
	}

	return result, nil
}

// matchRoster partitions the file's distinct clock references into roster
// matches and unmatched refs with punch counts and best-guess names.
func (im *Importer) matchRoster(ctx context.Context, punches []RawPunch) (map[string]roster.Employee, []UnmatchedRef, error) {
	counts := map[string]int{}
	names := map[string]string{}
	for _, p := range punches {
		counts[p.ClockRef]++
		if names[p.ClockRef] == "" {
			names[p.ClockRef] = p.EmployeeName
		}
	}

	matched := map[string]roster.Employee{}
	var unmatched []UnmatchedRef
	for ref, count := range counts {
		employee, found, err := im.roster.FindByClockRef(ctx, ref)
		if err != nil {
			return nil, nil, err
		}
		if found {
			matched[ref] = employee
			continue
		}
		unmatched = append(unmatched, UnmatchedRef{
			ClockRef:      ref,
			PunchCount:    count,
			BestGuessName: names[ref],
		})
	}
	sort.Slice(unmatched, func(i, j int) bool { return unmatched[i].ClockRef < unmatched[j].ClockRef })
	return matched, unmatched, nil
}

func sortedEmployees(matched map[string]roster.Employee) []roster.Employee {
	seen := map[string]bool{}
	var employees []roster.Employee
	for _, employee := range matched {
		if seen[employee.ID] {
			continue
		}
		seen[employee.ID] = true
		employees = append(employees, employee)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })
	return employees
}

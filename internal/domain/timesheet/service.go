package timesheet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"payclock/internal/apperror"
	"payclock/internal/domain/leave"
	"payclock/internal/domain/payroll"
	"payclock/internal/domain/payweek"
	"payclock/internal/domain/punch"
	"payclock/internal/domain/roster"
)

// PayslipCreator is the slice of the payroll service approval drives.
type PayslipCreator interface {
	Create(ctx context.Context, in payroll.Input) (payroll.Result, error)
}

type Service struct {
	store   StoreAPI
	roster  roster.StoreAPI
	leaves  leave.StoreAPI
	payroll PayslipCreator

	// Now is swappable for tests.
	Now func() time.Time
}

func NewService(store StoreAPI, rosterStore roster.StoreAPI, leaves leave.StoreAPI, payrollService PayslipCreator) *Service {
	return &Service{
		store:   store,
		roster:  rosterStore,
		leaves:  leaves,
		payroll: payrollService,
		Now:     time.Now,
	}
}

// CreatePending upserts the review record for one employee-week from a
// reconciliation result. A Pending, unlocked sheet for the same week is
// overwritten (a re-import supersedes the earlier proposal); an approved or
// locked sheet is left alone and reported as a warning.
func (s *Service) CreatePending(ctx context.Context, employee roster.Employee, weekEnding time.Time, importID string, rec punch.ReconcileResult) (bool, string, error) {
	detail, err := json.Marshal(rec.Days)
	if err != nil {
		detail = []byte("[]")
	}

	existing, rowIndex, found, err := s.store.FindByEmployeeWeek(ctx, employee.ID, weekEnding)
	if err != nil {
		return false, "", err
	}
	if found && (existing.Status != StatusPending || existing.IsLocked) {
		return false, fmt.Sprintf("timesheet for %s week %s already %s; not replaced",
			employee.Name, weekEnding.Format(payweek.DateLayout), existing.Status), nil
	}

	sheet := Timesheet{
		ID:                    uuid.NewString(),
		EmployeeID:            employee.ID,
		EmployeeName:          employee.Name,
		WeekEnding:            weekEnding,
		ComputedHours:         rec.TotalHours,
		ComputedMinutes:       rec.TotalMinutes,
		EditableHours:         float64(rec.TotalHours),
		EditableMinutes:       float64(rec.TotalMinutes),
		LunchDeductionMinutes: rec.LunchDeductionMinutes,
		AuxDeductionMinutes:   rec.BathroomTimeMinutes,
		Detail:                string(detail),
		Warnings:              rec.Warnings,
		Status:                StatusPending,
		ImportID:              importID,
		ImportedAt:            s.Now(),
	}

	if found {
		sheet.ID = existing.ID
		if err := s.store.UpdateAt(ctx, rowIndex, sheet); err != nil {
			return false, "", err
		}
		return true, "", nil
	}
	if err := s.store.Append(ctx, sheet); err != nil {
		return false, "", err
	}
	return true, "", nil
}

// CreateManual registers a hand-entered timesheet for an employee-week with
// no (usable) punch data.
func (s *Service) CreateManual(ctx context.Context, employeeID string, weekEnding time.Time, hours, minutes, overtimeHours, overtimeMinutes float64, notes string) (Timesheet, error) {
	employee, found, err := s.roster.FindByID(ctx, employeeID)
	if err != nil {
		return Timesheet{}, err
	}
	if !found {
		return Timesheet{}, apperror.Newf(apperror.KindNotFound, apperror.CodeNotFound,
			"employee %s not found in roster", employeeID)
	}
	canonical := payweek.Ending(weekEnding)
	if _, _, exists, err := s.store.FindByEmployeeWeek(ctx, employeeID, canonical); err != nil {
		return Timesheet{}, err
	} else if exists {
		return Timesheet{}, apperror.Newf(apperror.KindDuplicate, apperror.CodeDuplicateTimesheet,
			"timesheet already exists for %s week ending %s", employee.Name, canonical.Format(payweek.DateLayout))
	}

	sheet := Timesheet{
		ID:              uuid.NewString(),
		EmployeeID:      employee.ID,
		EmployeeName:    employee.Name,
		WeekEnding:      canonical,
		EditableHours:   hours,
		EditableMinutes: minutes,
		OvertimeHours:   overtimeHours,
		OvertimeMinutes: overtimeMinutes,
		Status:          StatusPending,
		ImportedAt:      s.Now(),
		Notes:           notes,
	}
	if err := s.store.Append(ctx, sheet); err != nil {
		return Timesheet{}, err
	}
	return sheet, nil
}

// Approve moves a pending timesheet to Approved by generating its payslip.
// All monetary add-ons default to zero; they stay editable on the payslip
// until the edit deadline. A payslip already existing for the employee-week
// rejects the approval, whichever path created it.
func (s *Service) Approve(ctx context.Context, id, reviewer string) (ApprovalResult, error) {
	sheet, rowIndex, err := s.pendingByID(ctx, id)
	if err != nil {
		return ApprovalResult{}, err
	}

	if _, found, err := s.roster.FindByID(ctx, sheet.EmployeeID); err != nil {
		return ApprovalResult{}, err
	} else if !found {
		return ApprovalResult{}, apperror.Newf(apperror.KindNotFound, apperror.CodeNotFound,
			"employee %s no longer in roster", sheet.EmployeeID)
	}

	weekEnding := s.canonicalWeekEnding(sheet)
	created, err := s.payroll.Create(ctx, payroll.Input{
		EmployeeID:      sheet.EmployeeID,
		WeekEnding:      weekEnding.Format(payweek.DateLayout),
		Hours:           sheet.EditableHours,
		Minutes:         sheet.EditableMinutes,
		OvertimeHours:   sheet.OvertimeHours,
		OvertimeMinutes: sheet.OvertimeMinutes,
	})
	if err != nil {
		return ApprovalResult{}, err
	}

	sheet.Status = StatusApproved
	sheet.Reviewer = reviewer
	sheet.ReviewedAt = s.Now()
	sheet.PayslipRef = created.Payslip.RecordNumber
	sheet.IsLocked = true
	if err := s.store.UpdateAt(ctx, rowIndex, sheet); err != nil {
		// The payslip exists but the sheet still reads Pending; a retry will
		// hit the duplicate guard, which is the designed re-entry path.
		log.Printf("timesheet %s approval state update failed after payslip %d: %v",
			sheet.ID, created.Payslip.RecordNumber, err)
		return ApprovalResult{}, err
	}

	return ApprovalResult{
		Timesheet:  sheet,
		PayslipRef: created.Payslip.RecordNumber,
		Warnings:   created.Warnings,
	}, nil
}

// ApproveWithLeaveBackfill bulk-creates one leave record per missing day,
// then approves. Leave records already written are not rolled back when a
// later step fails; per-day errors are reported instead.
func (s *Service) ApproveWithLeaveBackfill(ctx context.Context, id, reviewer string, missingDays []time.Time, reason, notes string) (ApprovalResult, error) {
	if !leave.ValidReason(reason) {
		return ApprovalResult{}, apperror.Newf(apperror.KindValidation, apperror.CodeInvalidInput,
			"unknown leave reason %q", reason)
	}
	sheet, _, err := s.pendingByID(ctx, id)
	if err != nil {
		return ApprovalResult{}, err
	}

	leaveErrors := map[string]string{}
	var leaveCreated []string
	for _, day := range missingDays {
		day = payweek.Truncate(day)
		record := leave.Record{
			EmployeeName: sheet.EmployeeName,
			StartDate:    day,
			ReturnDate:   day.AddDate(0, 0, 1),
			Reason:       reason,
			TotalDays:    1,
			Notes:        notes,
		}
		if err := s.leaves.Append(ctx, record); err != nil {
			leaveErrors[day.Format(payweek.DateLayout)] = err.Error()
			continue
		}
		leaveCreated = append(leaveCreated, day.Format(payweek.DateLayout))
	}

	result, err := s.Approve(ctx, id, reviewer)
	if len(leaveErrors) > 0 {
		result.LeaveErrors = leaveErrors
	}
	if err != nil && len(leaveCreated) > 0 {
		// The leave records stand even though the approval failed; the caller
		// must learn which days now carry leave before retrying.
		err = attachLeaveOutcome(err, leaveCreated, leaveErrors)
	}
	return result, err
}

func attachLeaveOutcome(err error, created []string, leaveErrors map[string]string) error {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.Wrap(err, apperror.KindSync, apperror.CodeLeaveBackfillIncomplete,
			"approval failed after leave backfill")
	}
	details, _ := appErr.Details.(map[string]any)
	if details == nil {
		details = map[string]any{}
	}
	details["leaveRecordsCreated"] = created
	if len(leaveErrors) > 0 {
		details["leaveErrors"] = leaveErrors
	}
	return appErr.WithDetails(details)
}

// Reject closes a pending timesheet without a payslip.
func (s *Service) Reject(ctx context.Context, id, reviewer, reason string) (Timesheet, error) {
	sheet, rowIndex, err := s.pendingByID(ctx, id)
	if err != nil {
		return Timesheet{}, err
	}
	sheet.Status = StatusRejected
	sheet.Reviewer = reviewer
	sheet.ReviewedAt = s.Now()
	if reason != "" {
		if sheet.Notes != "" {
			sheet.Notes += "; "
		}
		sheet.Notes += "rejected: " + reason
	}
	if err := s.store.UpdateAt(ctx, rowIndex, sheet); err != nil {
		return Timesheet{}, err
	}
	return sheet, nil
}

// Lock makes a timesheet permanently read-only regardless of status.
func (s *Service) Lock(ctx context.Context, id string) (Timesheet, error) {
	sheet, rowIndex, found, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Timesheet{}, err
	}
	if !found {
		return Timesheet{}, apperror.Newf(apperror.KindNotFound, apperror.CodeNotFound, "timesheet %s not found", id)
	}
	sheet.IsLocked = true
	if err := s.store.UpdateAt(ctx, rowIndex, sheet); err != nil {
		return Timesheet{}, err
	}
	return sheet, nil
}

func (s *Service) Get(ctx context.Context, id string) (Timesheet, error) {
	sheet, _, found, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Timesheet{}, err
	}
	if !found {
		return Timesheet{}, apperror.Newf(apperror.KindNotFound, apperror.CodeNotFound, "timesheet %s not found", id)
	}
	return sheet, nil
}

func (s *Service) List(ctx context.Context) ([]Timesheet, error) {
	return s.store.List(ctx)
}

func (s *Service) pendingByID(ctx context.Context, id string) (Timesheet, int, error) {
	sheet, rowIndex, found, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Timesheet{}, 0, err
	}
	if !found {
		return Timesheet{}, 0, apperror.Newf(apperror.KindNotFound, apperror.CodeNotFound, "timesheet %s not found", id)
	}
	if sheet.Status != StatusPending {
		return Timesheet{}, 0, apperror.Newf(apperror.KindValidation, apperror.CodeInvalidState,
			"timesheet %s is %s, not Pending", id, sheet.Status)
	}
	if sheet.IsLocked {
		return Timesheet{}, 0, apperror.Newf(apperror.KindValidation, apperror.CodeInvalidState,
			"timesheet %s is locked", id)
	}
	return sheet, rowIndex, nil
}

// canonicalWeekEnding keys the payslip to the Friday on or after the import
// date; the stored week ending wins when present since it is already that
// Friday.
func (s *Service) canonicalWeekEnding(sheet Timesheet) time.Time {
	if !sheet.WeekEnding.IsZero() {
		return payweek.Ending(sheet.WeekEnding)
	}
	return payweek.Ending(sheet.ImportedAt)
}

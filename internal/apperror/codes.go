package apperror

const (
	CodeInvalidInput            = "INVALID_INPUT"
	CodeDuplicateImport         = "DUPLICATE_IMPORT"
	CodeUnmatchedEmployees      = "UNMATCHED_EMPLOYEES"
	CodeDuplicatePayslip        = "DUPLICATE_PAYSLIP"
	CodeDuplicateTimesheet      = "DUPLICATE_TIMESHEET"
	CodeNotFound                = "NOT_FOUND"
	CodeEditWindowExpired       = "EDIT_WINDOW_EXPIRED"
	CodeInvalidState            = "INVALID_STATE"
	CodeLoanOverdraft           = "LOAN_OVERDRAFT"
	CodeLedgerSyncFailed        = "LEDGER_SYNC_FAILED"
	CodeLeaveBackfillIncomplete = "LEAVE_BACKFILL_INCOMPLETE"
	CodeParseFailed             = "PARSE_FAILED"
)

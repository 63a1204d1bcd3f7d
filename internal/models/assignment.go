package models

// AssignmentState tracks a schedule submission through validation.
type AssignmentState string

const (
	AssignmentDraft      AssignmentState = "DRAFT"
	AssignmentValidating AssignmentState = "VALIDATING"
	AssignmentCommitted  AssignmentState = "COMMITTED"
	AssignmentRejected   AssignmentState = "REJECTED"
)

// RejectionReason explains why a submission was not committed.
type RejectionReason string

const (
	ReasonHourMismatch     RejectionReason = "HOUR_MISMATCH"
	ReasonOverContract     RejectionReason = "OVER_CONTRACT"
	ReasonParityConflict   RejectionReason = "PARITY_CONFLICT"
	ReasonTeacherConflict  RejectionReason = "TEACHER_CONFLICT"
	ReasonRoomConflict     RejectionReason = "ROOM_CONFLICT"
	ReasonMalformedRange   RejectionReason = "MALFORMED_RANGE"
	ReasonPersistenceError RejectionReason = "PERSISTENCE_ERROR"
)

// ConflictReason maps an occupancy dimension to its rejection reason.
func ConflictReason(kind DimensionKind) RejectionReason {
	switch kind {
	case DimensionParity:
		return ReasonParityConflict
	case DimensionTeacher:
		return ReasonTeacherConflict
	default:
		return ReasonRoomConflict
	}
}

package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/prospekta/lead-tracker/internal/entity"
	"github.com/prospekta/lead-tracker/internal/infra/queue"
)

type CreateSubmissionInput struct {
	Name              string `json:"name"`
	PhoneNumber       string `json:"phone_number"`
	ProjectInterestID string `json:"project_interest_id"`
	Notes             string `json:"notes,omitempty"`
}

type CreateSubmissionUseCase struct {
	Subs             SubmissionRepositoryInterface
	Projects         ProjectInterestRepositoryInterface
	Events           LeadEventProducerInterface
	HotLeadThreshold int
	OwnershipTTL     time.Duration

	locks *keyLock
	now   func() time.Time
}

func NewCreateSubmissionUseCase(
	subs SubmissionRepositoryInterface,
	projects ProjectInterestRepositoryInterface,
	events LeadEventProducerInterface,
	hotLeadThreshold int,
	ownershipTTL time.Duration,
) *CreateSubmissionUseCase {
	return &CreateSubmissionUseCase{
		Subs:             subs,
		Projects:         projects,
		Events:           events,
		HotLeadThreshold: hotLeadThreshold,
		OwnershipTTL:     ownershipTTL,
		locks:            newKeyLock(),
		now:              time.Now,
	}
}

// Execute ingests a lead submission. The first submission for a dedup key
// becomes tier 1 with status owned; later submissions by other marketers are
// accepted as duplicates with the next tier. A marketer who already holds the
// owned row for the key is rejected without creating a row.
func (uc *CreateSubmissionUseCase) Execute(ctx context.Context, userID string, input CreateSubmissionInput) (*entity.Submission, error) {
	if validationErrors := ValidateCreateSubmissionInput(input); len(validationErrors) > 0 {
		return nil, NewValidationError(joinValidationErrors(validationErrors))
	}

	project, err := uc.Projects.FindByID(ctx, input.ProjectInterestID)
	if err != nil {
		return nil, NewValidationError("project interest not found")
	}
	if !project.IsActive {
		return nil, NewValidationError("project interest is no longer active")
	}

	phone := normalizePhone(input.PhoneNumber)

	// Serialize read-decide-insert per dedup key so concurrent ingestions
	// cannot both observe the same chain length.
	key := phone + "|" + project.ID
	uc.locks.Lock(key)
	defer uc.locks.Unlock(key)

	chain, err := uc.Subs.FindChain(ctx, phone, project.ID)
	if err != nil {
		return nil, NewStorageError("failed to check existing submissions", err)
	}

	for _, member := range chain {
		if member.UserID == userID && member.Status == entity.StatusOwned {
			return nil, NewConflictError("you already own this lead")
		}
	}

	submission := entity.NewSubmission(userID, input.Name, phone, project.ID, input.Notes)
	if len(chain) == 0 {
		expiresAt := uc.now().Add(uc.OwnershipTTL)
		submission.Status = entity.StatusOwned
		submission.OwnershipExpiresAt = &expiresAt
	} else {
		submission.Status = entity.StatusDuplicate
		submission.OriginalSubmissionID = chain[0].ID
	}

	if err := uc.Subs.Create(ctx, submission); err != nil {
		if err == entity.ErrOwnershipTaken {
			return nil, NewConflictError("an owned submission already exists for this lead")
		}
		return nil, NewStorageError("failed to create submission", err)
	}

	chain = append(chain, submission)
	annotated := AnnotateChain(chain)
	submission.DuplicateTier = len(chain)
	if len(chain) > 1 {
		submission.DuplicateChain = annotated
	}

	hot, distinct := uc.classifyHotLead(ctx, chain, phone, project)
	submission.IsHotLead = hot

	uc.publishCreated(ctx, submission, project, distinct)

	return submission, nil
}

// classifyHotLead re-evaluates the group after an insert. The flag is a
// group-level property mirrored onto every row in one statement, so members
// can never disagree.
func (uc *CreateSubmissionUseCase) classifyHotLead(ctx context.Context, chain []*entity.Submission, phone string, project *entity.ProjectInterest) (bool, int) {
	distinct := DistinctSubmitters(chain)
	if distinct < uc.HotLeadThreshold {
		return false, distinct
	}

	alreadyHot := true
	for _, member := range chain {
		if !member.IsHotLead {
			alreadyHot = false
			break
		}
	}
	if alreadyHot {
		return true, distinct
	}

	if err := uc.Subs.SetHotLead(ctx, phone, project.ID, true); err != nil {
		zap.L().Error("failed to flag hot lead group",
			zap.String("phone_number", phone),
			zap.String("project_interest_id", project.ID),
			zap.Error(err))
		return false, distinct
	}
	for _, member := range chain {
		member.IsHotLead = true
	}

	if uc.Events != nil {
		err := uc.Events.PublishLeadEvent(ctx, queue.LeadEvent{
			Type:              queue.EventLeadHot,
			SubmissionID:      chain[len(chain)-1].ID,
			PhoneNumber:       phone,
			ProjectInterestID: project.ID,
			ProjectName:       project.Name,
			DistinctMarketers: distinct,
		})
		if err != nil {
			zap.L().Warn("failed to publish hot lead event", zap.Error(err))
		}
	}

	return true, distinct
}

// Event publishing is best effort. A queue outage must not fail the write.
func (uc *CreateSubmissionUseCase) publishCreated(ctx context.Context, s *entity.Submission, project *entity.ProjectInterest, distinct int) {
	if uc.Events == nil {
		return
	}
	err := uc.Events.PublishLeadEvent(ctx, queue.LeadEvent{
		Type:              queue.EventSubmissionCreated,
		SubmissionID:      s.ID,
		UserID:            s.UserID,
		PhoneNumber:       s.PhoneNumber,
		ProjectInterestID: s.ProjectInterestID,
		ProjectName:       project.Name,
		Status:            s.Status,
		Tier:              s.DuplicateTier,
		DistinctMarketers: distinct,
	})
	if err != nil {
		zap.L().Warn("failed to publish submission created event",
			zap.String("submission_id", s.ID),
			zap.Error(err))
	}
}

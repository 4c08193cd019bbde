package worker

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"sitecrew/models"
)

// InviteMailer sends a notification for one invitation record.
type InviteMailer interface {
	SendInvitationEmail(invitation *models.Invitation) error
}

// InviteWorker delivers invitation emails for rows the setup workflow left
// behind. Delivery is best effort: a failure is recorded on the row and the
// worker moves on, no retry schedule and no guarantee to the caller.
type InviteWorker struct {
	DB     *gorm.DB
	Mailer InviteMailer
	Logger *log.Logger
}

func NewInviteWorker(db *gorm.DB, mailer InviteMailer, logger *log.Logger) *InviteWorker {
	return &InviteWorker{
		DB:     db,
		Mailer: mailer,
		Logger: logger,
	}
}

func (iw *InviteWorker) Start(ctx context.Context) {
	// Initial delay to let the server start up
	time.Sleep(10 * time.Second)

	iw.Logger.Println("Invite worker started")

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			iw.Logger.Println("Invite worker shutting down...")
			return
		case <-ticker.C:
			iw.processPendingInvitations()
		}
	}
}

func (iw *InviteWorker) processPendingInvitations() {
	var pending []models.Invitation
	if err := iw.DB.Where("notified = ? AND status = ?", false, models.InvitationStatusInvited).
		Order("id asc").
		Limit(50).
		Find(&pending).Error; err != nil {
		iw.Logger.Printf("Error fetching pending invitations: %v", err)
		return
	}

	for _, invitation := range pending {
		if err := iw.Mailer.SendInvitationEmail(&invitation); err != nil {
			iw.Logger.Printf("Error sending invitation %d to %s: %v", invitation.ID, invitation.Email, err)
			iw.recordFailure(invitation.ID, err.Error())
			continue
		}
		iw.markNotified(invitation.ID)
	}
}

func (iw *InviteWorker) markNotified(id uint) {
	if err := iw.DB.Model(&models.Invitation{}).Where("id = ?", id).Updates(map[string]interface{}{
		"notified":   true,
		"last_error": "",
	}).Error; err != nil {
		iw.Logger.Printf("Error marking invitation %d notified: %v", id, err)
	}
}

func (iw *InviteWorker) recordFailure(id uint, message string) {
	// Single attempt only: the row is marked handled with the error kept
	if err := iw.DB.Model(&models.Invitation{}).Where("id = ?", id).Updates(map[string]interface{}{
		"notified":   true,
		"last_error": message,
	}).Error; err != nil {
		iw.Logger.Printf("Error recording invitation %d failure: %v", id, err)
	}
}

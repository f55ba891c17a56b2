package service

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"strings"

	"canela-backend/internal/client"
	"canela-backend/internal/dto"
	"canela-backend/internal/model"
	"canela-backend/internal/repository"
)

type ApplicationService interface {
	Submit(ctx context.Context, req *dto.SubmitApplicationRequest, cv []byte, cvName string) (*model.Application, error)
	List(ctx context.Context, filter repository.ApplicationFilter, page, limit int) ([]*model.Application, *dto.Pagination, error)
	Get(ctx context.Context, id uint) (*model.Application, error)
	UpdateStatus(ctx context.Context, id uint, req *dto.UpdateApplicationStatusRequest) (*model.Application, error)
	Delete(ctx context.Context, id uint) error
}

type applicationServiceImpl struct {
	appRepo  repository.ApplicationRepository
	uploader client.Uploader
	mailer   client.Mailer
	operator string
}

func NewApplicationService(appRepo repository.ApplicationRepository, uploader client.Uploader, mailer client.Mailer, operatorAddress string) ApplicationService {
	return &applicationServiceImpl{
		appRepo:  appRepo,
		uploader: uploader,
		mailer:   mailer,
		operator: operatorAddress,
	}
}

func (s *applicationServiceImpl) Submit(ctx context.Context, req *dto.SubmitApplicationRequest, cv []byte, cvName string) (*model.Application, error) {
	// roleAppliedFor and position are interchangeable for older clients.
	position := req.RoleAppliedFor
	if position == "" {
		position = req.Position
	}
	if req.FullName == "" || req.Email == "" || req.Phone == "" || position == "" {
		return nil, ErrMissingFields
	}

	cvURL := ""
	if len(cv) > 0 {
		url, err := s.uploader.Upload(ctx, cv, cvName, "recruitment/cvs")
		if err != nil {
			return nil, fmt.Errorf("upload cv: %w", err)
		}
		cvURL = url
		log.Printf("cv uploaded: %s", cvURL)
	}

	app := &model.Application{
		FullName:            req.FullName,
		Email:               strings.ToLower(req.Email),
		Phone:               req.Phone,
		Position:            position,
		LinkedIn:            req.LinkedIn,
		MotivationStatement: req.MotivationStatement,
		CoverLetter:         req.CoverLetter,
		CVUrl:               cvURL,
		VideoURL:            req.VideoURL,
		VideoType:           req.VideoType,
		ConsentGiven:        req.ConsentGiven,
		Status:              model.ApplicationStatusPending,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	log.Printf("new application submitted email=%s position=%s", app.Email, app.Position)

	go s.sendSubmissionEmails(app)

	return app, nil
}

func (s *applicationServiceImpl) sendSubmissionEmails(app *model.Application) {
	ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
	defer cancel()

	confirmation := &client.Message{
		To:      app.Email,
		Subject: "Application Received - Canela Ceylon",
		HTML: fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #8B4513;">Thank you for your application!</h2>
  <p>Dear %s,</p>
  <p>We have received your application for the position of <strong>%s</strong>.</p>
  <p>Our recruitment team will review your application and get back to you soon.</p>
  <br/>
  <p>Best regards,</p>
  <p><strong>Canela Ceylon Recruitment Team</strong></p>
</div>`, template.HTMLEscapeString(app.FullName), template.HTMLEscapeString(app.Position)),
	}
	if err := s.mailer.Send(ctx, confirmation); err != nil {
		log.Printf("application confirmation email failed: %v", err)
	}

	if s.operator == "" {
		return
	}
	notice := &client.Message{
		To:      s.operator,
		ReplyTo: app.Email,
		Subject: fmt.Sprintf("New Job Application - %s", app.Position),
		HTML:    renderApplicationEmail(app),
	}
	if err := s.mailer.Send(ctx, notice); err != nil {
		log.Printf("application notification email failed: %v", err)
	}
}

var applicationEmailTmpl = template.Must(template.New("application").Parse(`
<div style="font-family: Arial, sans-serif;">
  <h2 style="color: #8B4513;">New Job Application Received</h2>
  <table style="border-collapse: collapse; width: 100%; max-width: 600px;">
    <tr><td style="padding: 8px; border: 1px solid #ddd;"><strong>Position:</strong></td><td style="padding: 8px; border: 1px solid #ddd;">{{.Position}}</td></tr>
    <tr><td style="padding: 8px; border: 1px solid #ddd;"><strong>Name:</strong></td><td style="padding: 8px; border: 1px solid #ddd;">{{.FullName}}</td></tr>
    <tr><td style="padding: 8px; border: 1px solid #ddd;"><strong>Email:</strong></td><td style="padding: 8px; border: 1px solid #ddd;">{{.Email}}</td></tr>
    <tr><td style="padding: 8px; border: 1px solid #ddd;"><strong>Phone:</strong></td><td style="padding: 8px; border: 1px solid #ddd;">{{.Phone}}</td></tr>
    {{if .LinkedIn}}<tr><td style="padding: 8px; border: 1px solid #ddd;"><strong>LinkedIn:</strong></td><td style="padding: 8px; border: 1px solid #ddd;"><a href="{{.LinkedIn}}">View Profile</a></td></tr>{{end}}
    {{if .CVUrl}}<tr><td style="padding: 8px; border: 1px solid #ddd;"><strong>CV:</strong></td><td style="padding: 8px; border: 1px solid #ddd;"><a href="{{.CVUrl}}">View CV</a></td></tr>{{end}}
    {{if .VideoURL}}<tr><td style="padding: 8px; border: 1px solid #ddd;"><strong>Intro Video:</strong></td><td style="padding: 8px; border: 1px solid #ddd;"><a href="{{.VideoURL}}">Watch Video</a></td></tr>{{end}}
  </table>
  {{if .MotivationStatement}}<div style="margin-top: 20px;"><h3 style="color: #8B4513;">Motivation Statement:</h3><p style="white-space: pre-wrap;">{{.MotivationStatement}}</p></div>{{end}}
  {{if .CoverLetter}}<div style="margin-top: 20px;"><h3 style="color: #8B4513;">Cover Letter:</h3><p style="white-space: pre-wrap;">{{.CoverLetter}}</p></div>{{end}}
</div>`))

func renderApplicationEmail(app *model.Application) string {
	var b strings.Builder
	if err := applicationEmailTmpl.Execute(&b, app); err != nil {
		log.Printf("render application email: %v", err)
		return fmt.Sprintf("New application from %s for %s", app.FullName, app.Position)
	}
	return b.String()
}

func (s *applicationServiceImpl) List(ctx context.Context, filter repository.ApplicationFilter, page, limit int) ([]*model.Application, *dto.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	skip := (page - 1) * limit

	apps, err := s.appRepo.Find(ctx, filter, limit, skip)
	if err != nil {
		return nil, nil, fmt.Errorf("list applications: %w", err)
	}
	total, err := s.appRepo.Count(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("count applications: %w", err)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return apps, &dto.Pagination{Total: total, Page: page, Limit: limit, Pages: pages}, nil
}

func (s *applicationServiceImpl) Get(ctx context.Context, id uint) (*model.Application, error) {
	return s.appRepo.FindByID(ctx, id)
}

var statusMessages = map[string]string{
	model.ApplicationStatusReviewing:   "Your application is currently under review.",
	model.ApplicationStatusShortlisted: "Congratulations! You have been shortlisted. We will contact you soon.",
	model.ApplicationStatusRejected:    "Thank you for your interest. Unfortunately, we have decided to move forward with other candidates.",
	model.ApplicationStatusHired:       "Congratulations! We are pleased to offer you the position. We will contact you with further details.",
}

func (s *applicationServiceImpl) UpdateStatus(ctx context.Context, id uint, req *dto.UpdateApplicationStatusRequest) (*model.Application, error) {
	if !model.ValidApplicationStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	fields := map[string]interface{}{"status": req.Status}
	if req.AdminNotes != nil {
		fields["admin_notes"] = *req.AdminNotes
	}

	app, err := s.appRepo.Updates(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	log.Printf("application status updated id=%d status=%s", id, req.Status)

	if msg, ok := statusMessages[req.Status]; ok {
		go s.sendStatusEmail(app, msg)
	}
	return app, nil
}

func (s *applicationServiceImpl) sendStatusEmail(app *model.Application, statusMessage string) {
	ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
	defer cancel()

	err := s.mailer.Send(ctx, &client.Message{
		To:      app.Email,
		Subject: fmt.Sprintf("Application Status Update - %s", app.Position),
		HTML: fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #8B4513;">Application Status Update</h2>
  <p>Dear %s,</p>
  <p>%s</p>
  <p>Position: <strong>%s</strong></p>
  <p>Status: <strong style="text-transform: uppercase; color: #8B4513;">%s</strong></p>
  <br/>
  <p>Best regards,</p>
  <p><strong>Canela Ceylon Recruitment Team</strong></p>
</div>`,
			template.HTMLEscapeString(app.FullName),
			template.HTMLEscapeString(statusMessage),
			template.HTMLEscapeString(app.Position),
			template.HTMLEscapeString(app.Status)),
	})
	if err != nil {
		log.Printf("status update email failed: %v", err)
	}
}

func (s *applicationServiceImpl) Delete(ctx context.Context, id uint) error {
	app, err := s.appRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	log.Printf("application deleted id=%d email=%s", id, app.Email)
	return nil
}

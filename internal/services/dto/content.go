package dto

type AnnouncementRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
}

type LocationRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	Region string `json:"region" binding:"required,max=100"`
}

type EmailTemplateRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Subject string `json:"subject" binding:"required,max=200"`
	Body    string `json:"body" binding:"required"`
}

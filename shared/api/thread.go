package api

// Request DTOs, filled from urlencoded form fields

type CreateThreadRequest struct {
	Title   string `form:"title" validate:"required,notblank"`
	Message string `form:"message" validate:"required,notblank"`
}

type CreateReplyRequest struct {
	ParentId string `form:"parent_id" validate:"required,number"`
	Message  string `form:"message" validate:"required,notblank"`
}

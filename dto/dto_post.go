package dto

// CreatePostReq is the body of POST /posts.
type CreatePostReq struct {
	Text string `json:"text" validate:"required,max=2000" example:"Hello dev community"`
}

// CreateCommentReq is the body of POST /posts/comment/:id.
type CreateCommentReq struct {
	Text string `json:"text" validate:"required,max=2000" example:"Nice post!"`
}

type MessageResponse struct {
	Msg string `json:"msg" example:"Post removed"`
}

package dto

// SaveGenreRequest HTTP创建/更新分类请求
type SaveGenreRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"Science Fiction"`
	Description string `json:"description" binding:"max=1000" example:"Speculative fiction dealing with imaginative concepts"`
}

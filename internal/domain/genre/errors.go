package genre

import (
	"net/http"

	apperrors "github.com/pustaka/bookstore/pkg/errors"
)

// 分类领域错误定义
var (
	// ErrGenreNotFound 分类不存在（或已被软删除）
	ErrGenreNotFound = apperrors.New(http.StatusNotFound, "Genre not found")

	// ErrNameDuplicate 分类名称已存在
	ErrNameDuplicate = apperrors.New(http.StatusConflict, "Genre with this name already exists")

	// ErrGenreHasBooks 分类下仍有图书，不允许删除
	ErrGenreHasBooks = apperrors.New(http.StatusBadRequest, "Cannot delete genre that has books. Please delete or reassign the books first.")
)

package viewmodels

import (
	"net/http"

	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/kenshot/pkg/models"
)

type BaseViewModel struct {
	Message            string
	IsError            bool
	IsWarning          bool
	IsHtmx             bool
	IsOwner            bool
	Member             *models.Member
	JavascriptIncludes []rendering.JavascriptInclude
}

func GetMemberFromContext(r *http.Request) *models.Member {
	if result, ok := r.Context().Value("member").(*models.Member); ok {
		return result
	}

	return nil
}

package member

import (
	"errors"
	"net/http"
	"strconv"

	sharedContext "github.com/cufc/member-api/internal/shared/context"
	"github.com/cufc/member-api/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	memberService *MemberService
}

func NewMemberHandler(memberService *MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// GetMyInfo returns the record of the authenticated caller.
func (h *MemberHandler) GetMyInfo(c *gin.Context) {
	sub, ok := sharedContext.RequireSubject(c)
	if !ok {
		return
	}

	m, err := h.memberService.GetByIdentity(c.Request.Context(), sub)
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError)
		return
	}

	handler.OK(c, m)
}

// UpdateMyInfo merges a partial update into the caller's own record.
func (h *MemberHandler) UpdateMyInfo(c *gin.Context) {
	sub, ok := sharedContext.RequireSubject(c)
	if !ok {
		return
	}

	var update UpdateMemberRequest
	if !handler.BindJSON(c, &update) {
		return
	}

	m, err := h.memberService.UpdateByIdentity(c.Request.Context(), sub, &update)
	if err != nil {
		h.respondError(c, err, http.StatusBadRequest)
		return
	}

	handler.OK(c, m)
}

// Create handles the public signup route. Field validation failures were
// already rejected with a 422 by BindJSON; every service failure maps to 400.
func (h *MemberHandler) Create(c *gin.Context) {
	var req CreateMemberRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	m, err := h.memberService.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, http.StatusBadRequest)
		return
	}

	handler.Created(c, m)
}

// List returns all records matching the optional query filter.
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.memberService.ListAll(c.Request.Context(), listFilterFromQuery(c))
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError)
		return
	}

	handler.List(c, len(members), members)
}

// GetByID fetches a record by its identifier.
func (h *MemberHandler) GetByID(c *gin.Context) {
	m, err := h.memberService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError)
		return
	}

	handler.OK(c, m)
}

// UpdateByID merges a partial update into the identified record.
func (h *MemberHandler) UpdateByID(c *gin.Context) {
	var update UpdateMemberRequest
	if !handler.BindJSON(c, &update) {
		return
	}

	m, err := h.memberService.UpdateByID(c.Request.Context(), c.Param("id"), &update)
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError)
		return
	}

	handler.OK(c, m)
}

// DeleteByID removes the identified record. The success body is an empty
// object, not the deleted record.
func (h *MemberHandler) DeleteByID(c *gin.Context) {
	if _, err := h.memberService.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, http.StatusInternalServerError)
		return
	}

	handler.OK(c, gin.H{})
}

// respondError maps a service failure to a status code and envelope.
// Malformed identifiers are always 400 and missing records always 404;
// everything else takes the per-endpoint fallback status.
func (h *MemberHandler) respondError(c *gin.Context, err error, fallback int) {
	var svcErr *Error
	if !errors.As(err, &svcErr) {
		handler.Fail(c, fallback, err, err.Error())
		return
	}

	switch svcErr.Kind {
	case KindInvalidID:
		handler.Fail(c, http.StatusBadRequest, err, svcErr.Message)
	case KindNotFound:
		handler.Fail(c, http.StatusNotFound, err, svcErr.Message)
	default:
		handler.Fail(c, fallback, err, svcErr.Message)
	}
}

// listFilterFromQuery extracts the allow-listed filter fields from the query
// string; unknown parameters are dropped.
func listFilterFromQuery(c *gin.Context) ListFilter {
	f := ListFilter{
		Role:  c.Query("role"),
		Email: c.Query("email"),
	}

	if raw, ok := c.GetQuery("is_waiver_on_file"); ok {
		if v, err := strconv.ParseBool(raw); err == nil {
			f.IsWaiverOnFile = &v
		}
	}

	return f
}

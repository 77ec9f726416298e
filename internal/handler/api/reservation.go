package api

import (
	"net/http"

	"slot-booking/internal/domain/reservation"
	reqdto "slot-booking/internal/handler/dto/request"
	resdto "slot-booking/internal/handler/dto/response"
	"slot-booking/internal/handler/httperr"
	"slot-booking/internal/handler/middleware"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/commands"
	"slot-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Book slots
// @Description Reserve consecutive one-hour slots starting at startDateTime
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.BookRequest true "Booking request"
// @Success 201 {object} resdto.BookResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Book(c *gin.Context) {
	var req reqdto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	sessionLineUserID, _ := middleware.GetLineUserID(c)
	if _, err := h.cmds.Book(c.Request.Context(), req.ToInput(sessionLineUserID)); err != nil {
		abortWithLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.BookResponse{Success: true})
}

// @Summary List reservations
// @Description List reservation records whose slot lies in [start, end], ordered by slot
// @Tags reservations
// @Produce json
// @Param start query string true "First slot (YYYY-MM-DD-HH)"
// @Param end query string true "Last slot (YYYY-MM-DD-HH)"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	var query reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "start and end must be slot identifiers (YYYY-MM-DD-HH)", nil)
		return
	}

	records, err := h.q.ListBySlotRange(c.Request.Context(), query.Start, query.End)
	if err != nil {
		abortWithLedgerError(c, err)
		return
	}

	body, err := resdto.FromRecords(records)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Server error", nil)
		return
	}
	c.JSON(http.StatusOK, body)
}

func abortWithLedgerError(c *gin.Context, err error) {
	switch errs.KindOf(err) {
	case errs.KindFormat, errs.KindOutOfHours:
		httperr.AbortWithError(c, http.StatusBadRequest, err, errs.RootMessage(err), nil)
	case errs.KindConflict:
		msg := "Time slot is already booked"
		if ce, ok := reservation.AsConflict(err); ok {
			msg = ce.Error()
		}
		httperr.AbortWithError(c, http.StatusConflict, err, msg, nil)
	case errs.KindStore:
		if errs.Is(err, errs.ErrStoreTimeout) {
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Reservation store timed out", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Server error", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Server error", nil)
	}
}

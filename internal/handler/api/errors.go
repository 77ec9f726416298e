package api

import "slot-booking/internal/pkg/errs"

var errMissingLineUserID = errs.New("missing line user id")

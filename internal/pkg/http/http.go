package http

import (
	pkghttp "github.com/neuraops/dashboard/pkg/http"
)

const (
	RequestIDHeader = pkghttp.DefaultRequestIDHeader
)

const (
	DestinationControlPlane pkghttp.Destination = "api"
)

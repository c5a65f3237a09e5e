package apierror

// Error type URIs following the urn:habitloop:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:habitloop:error:validation"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:habitloop:error:not_found"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:habitloop:error:bad_request"

	// TypeInvalidWeekKey indicates a week key that does not parse (400)
	TypeInvalidWeekKey = "urn:habitloop:error:invalid_week_key"

	// TypeInvalidTimezone indicates an unknown IANA timezone name (400)
	TypeInvalidTimezone = "urn:habitloop:error:invalid_timezone"

	// TypeUnauthorized indicates missing or invalid authentication (401)
	TypeUnauthorized = "urn:habitloop:error:unauthorized"

	// TypeForbidden indicates insufficient permissions (403)
	TypeForbidden = "urn:habitloop:error:forbidden"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:habitloop:error:internal"
)

// Titles for each error type
const (
	TitleValidation      = "Validation Error"
	TitleNotFound        = "Resource Not Found"
	TitleBadRequest      = "Bad Request"
	TitleInvalidWeekKey  = "Invalid Week Key"
	TitleInvalidTimezone = "Invalid Timezone"
	TitleUnauthorized    = "Authentication Required"
	TitleForbidden       = "Permission Denied"
	TitleInternal        = "Internal Server Error"
)

package tenants

import "errors"

// ErrTenantUnavailable indicates the tenant's underlying storage could not
// be reached or opened. The caller should log the wrapped detail and
// surface a generic failure to the end user.
var ErrTenantUnavailable = errors.New("tenant storage unavailable")

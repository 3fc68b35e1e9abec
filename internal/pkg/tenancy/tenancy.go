package tenancy

import "context"

//Header is the HTTP header carrying the caller tenant
const Header = "X-Tenant-ID"

//Default is used when a request names no tenant
const Default = "default"

type ctxKey int

const tenantKey ctxKey = iota

//WithTenant stores the tenant in the context
func WithTenant(ctx context.Context, tenant string) context.Context {
	return context.WithValue(ctx, tenantKey, tenant)
}

//FromContext returns the tenant stored in the context or the default
func FromContext(ctx context.Context) string {
	if t, ok := ctx.Value(tenantKey).(string); ok && t != "" {
		return t
	}
	return Default
}

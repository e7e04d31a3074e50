package models

import (
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/dbx"
	"github.com/dmitrijs2005/jobtracker/internal/optx"
)

// Application is one job application owned by a user. It carries no
// credential material, so the stored and public shapes coincide.
type Application struct {
	ID                int64     `json:"id"`
	Role              string    `json:"role"`
	CompanyName       string    `json:"companyName"`
	JobPostLink       string    `json:"jobPostLink"`
	Location          string    `json:"location"`
	DateOfApplication time.Time `json:"dateOfApplication"`
	Status            string    `json:"status"`
	UserID            string    `json:"userId"`
}

// ApplicationPatch lists the fields an update may change. Unset fields are
// left untouched in the store.
type ApplicationPatch struct {
	Role              optx.Optional[string]    `json:"role"`
	CompanyName       optx.Optional[string]    `json:"companyName"`
	JobPostLink       optx.Optional[string]    `json:"jobPostLink"`
	Location          optx.Optional[string]    `json:"location"`
	DateOfApplication optx.Optional[time.Time] `json:"dateOfApplication"`
	Status            optx.Optional[string]    `json:"status"`
}

// ApplicationColumns maps the patch field names whose column differs.
var ApplicationColumns = dbx.MustColumnMap(map[string]string{
	"companyName":       "company_name",
	"jobPostLink":       "jobpostlink",
	"dateOfApplication": "dateofapplication",
})

// Fields returns the supplied fields in declaration order.
func (p ApplicationPatch) Fields() []dbx.Field {
	var fields []dbx.Field
	add := func(name string, v any, ok bool) {
		if ok {
			fields = append(fields, dbx.Field{Name: name, Value: v})
		}
	}

	v, ok := p.Role.Get()
	add("role", v, ok)
	v, ok = p.CompanyName.Get()
	add("companyName", v, ok)
	v, ok = p.JobPostLink.Get()
	add("jobPostLink", v, ok)
	v, ok = p.Location.Get()
	add("location", v, ok)
	d, ok := p.DateOfApplication.Get()
	add("dateOfApplication", d, ok)
	v, ok = p.Status.Get()
	add("status", v, ok)

	return fields
}

// Package resources defines the controller descriptors for the four
// phonebook resource types. The descriptors carry everything that differs
// between the otherwise identical CRUD screens: field lists, form filling
// and payload building.
package resources

import (
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/phonebook/internal/client/controller"
	"github.com/dmitrijs2005/phonebook/internal/models"
)

// Contacts returns the descriptor for the contacts screen, the only
// paginated, searchable collection.
func Contacts() controller.Descriptor[models.Contact] {
	return controller.Descriptor[models.Contact]{
		Singular:  "contact",
		Plural:    "contacts",
		Paginated: true,
		Fields: []controller.Field{
			{Key: "first_name", Label: "First name", Required: true},
			{Key: "last_name", Label: "Last name", Required: true},
			{Key: "email", Label: "Email"},
			{Key: "phone", Label: "Phone"},
			{Key: "mobile", Label: "Mobile"},
			{Key: "company_id", Label: "Company id"},
			{Key: "notes", Label: "Notes", Multiline: true},
		},
		ID: func(c models.Contact) int64 { return c.ID },
		FillForm: func(c models.Contact) map[string]string {
			companyID := ""
			if c.CompanyID != nil {
				companyID = strconv.FormatInt(*c.CompanyID, 10)
			}
			return map[string]string{
				"first_name": c.FirstName,
				"last_name":  c.LastName,
				"email":      c.Email,
				"phone":      c.Phone,
				"mobile":     c.Mobile,
				"company_id": companyID,
				"notes":      c.Notes,
			}
		},
		BuildPayload: contactPayload,
	}
}

func contactPayload(v map[string]string, editing bool) (map[string]any, error) {
	payload := map[string]any{
		"first_name": v["first_name"],
		"last_name":  v["last_name"],
		"email":      v["email"],
		"phone":      v["phone"],
		"mobile":     v["mobile"],
		"notes":      v["notes"],
	}
	// An empty company id is sent as an explicit null so an edit can clear
	// the association.
	if v["company_id"] == "" {
		payload["company_id"] = nil
	} else {
		id, err := strconv.ParseInt(v["company_id"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid company id %q", v["company_id"])
		}
		payload["company_id"] = id
	}
	return payload, nil
}

func Companies() controller.Descriptor[models.Company] {
	return controller.Descriptor[models.Company]{
		Singular: "company",
		Plural:   "companies",
		Fields: []controller.Field{
			{Key: "name", Label: "Name", Required: true},
			{Key: "industry", Label: "Industry"},
			{Key: "website", Label: "Website"},
			{Key: "email", Label: "Email"},
			{Key: "phone", Label: "Phone"},
			{Key: "address", Label: "Address"},
			{Key: "city", Label: "City"},
			{Key: "state", Label: "State"},
			{Key: "zip_code", Label: "Zip code"},
			{Key: "country", Label: "Country"},
			{Key: "description", Label: "Description", Multiline: true},
		},
		ID: func(c models.Company) int64 { return c.ID },
		FillForm: func(c models.Company) map[string]string {
			return map[string]string{
				"name":        c.Name,
				"industry":    c.Industry,
				"website":     c.Website,
				"email":       c.Email,
				"phone":       c.Phone,
				"address":     c.Address,
				"city":        c.City,
				"state":       c.State,
				"zip_code":    c.ZipCode,
				"country":     c.Country,
				"description": c.Description,
			}
		},
		BuildPayload: func(v map[string]string, editing bool) (map[string]any, error) {
			return map[string]any{
				"name":        v["name"],
				"industry":    v["industry"],
				"website":     v["website"],
				"email":       v["email"],
				"phone":       v["phone"],
				"address":     v["address"],
				"city":        v["city"],
				"state":       v["state"],
				"zip_code":    v["zip_code"],
				"country":     v["country"],
				"description": v["description"],
			}, nil
		},
	}
}

func Notices() controller.Descriptor[models.Notice] {
	return controller.Descriptor[models.Notice]{
		Singular:  "notice",
		Plural:    "notices",
		HasActive: true,
		Fields: []controller.Field{
			{Key: "title", Label: "Title", Required: true},
			{Key: "content", Label: "Content", Required: true, Multiline: true},
			{Key: "priority", Label: "Priority (low/normal/medium/high)"},
			{Key: "is_active", Label: "Active (true/false)", Default: "true"},
		},
		ID: func(n models.Notice) int64 { return n.ID },
		FillForm: func(n models.Notice) map[string]string {
			return map[string]string{
				"title":     n.Title,
				"content":   n.Content,
				"priority":  string(n.Priority),
				"is_active": strconv.FormatBool(n.IsActive),
			}
		},
		BuildPayload: func(v map[string]string, editing bool) (map[string]any, error) {
			payload := map[string]any{
				"title":     v["title"],
				"content":   v["content"],
				"is_active": v["is_active"] == "true",
			}
			// Priority is left out when blank; the server stores the
			// default level.
			if v["priority"] != "" {
				payload["priority"] = string(models.NormalizePriority(v["priority"]))
			}
			return payload, nil
		},
	}
}

func Users() controller.Descriptor[models.User] {
	return controller.Descriptor[models.User]{
		Singular:  "user",
		Plural:    "users",
		HasActive: true,
		Fields: []controller.Field{
			{Key: "username", Label: "Username", Required: true},
			{Key: "email", Label: "Email", Required: true},
			{Key: "role", Label: "Role (admin/editor/user)", Default: "user"},
			{Key: "is_active", Label: "Active (true/false)", Default: "true"},
			{Key: "password", Label: "Password", Secret: true},
			{Key: "confirm_password", Label: "Confirm password", Secret: true},
		},
		ID: func(u models.User) int64 { return u.ID },
		FillForm: func(u models.User) map[string]string {
			return map[string]string{
				"username":         u.Username,
				"email":            u.Email,
				"role":             string(u.Role),
				"is_active":        strconv.FormatBool(u.IsActive),
				"password":         "",
				"confirm_password": "",
			}
		},
		BuildPayload: userPayload,
	}
}

// userPayload is the only place with real client-side validation: passwords
// must match, a create needs a password, and on update an empty password is
// dropped so the server keeps the current one. The confirmation value never
// reaches the server.
func userPayload(v map[string]string, editing bool) (map[string]any, error) {
	if v["password"] != v["confirm_password"] {
		return nil, controller.ErrPasswordMismatch
	}
	if !editing && v["password"] == "" {
		return nil, controller.ErrPasswordRequired
	}

	role := v["role"]
	if role == "" {
		role = string(models.RoleUser)
	}
	if !models.Role(role).Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	payload := map[string]any{
		"username":  v["username"],
		"email":     v["email"],
		"role":      role,
		"is_active": v["is_active"] == "true",
	}
	if v["password"] != "" {
		payload["password"] = v["password"]
	}
	return payload, nil
}

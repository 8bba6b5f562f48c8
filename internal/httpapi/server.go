// Package httpapi exposes the domain services as a REST API under /api.
// Every route runs behind bearer-token authentication and a per-route
// permission guard; responses share a single status/message/data envelope.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/opsdesk/opsdesk/internal/domain/client"
	"github.com/opsdesk/opsdesk/internal/domain/company"
	"github.com/opsdesk/opsdesk/internal/domain/contact"
	"github.com/opsdesk/opsdesk/internal/domain/invoice"
	"github.com/opsdesk/opsdesk/internal/domain/org"
	"github.com/opsdesk/opsdesk/internal/domain/project"
	"github.com/opsdesk/opsdesk/internal/domain/task"
)

// Server routes HTTP requests to the domain services.
type Server struct {
	clients  *client.Service
	org      *org.Service
	projects *project.Service
	tasks    *task.Service
	invoices *invoice.Service
	contacts *contact.Service
	company  *company.Service
	logger   *slog.Logger
}

// NewServer creates the HTTP server facade.
func NewServer(
	clients *client.Service,
	orgSvc *org.Service,
	projects *project.Service,
	tasks *task.Service,
	invoices *invoice.Service,
	contacts *contact.Service,
	companySvc *company.Service,
	logger *slog.Logger,
) *Server {
	return &Server{
		clients:  clients,
		org:      orgSvc,
		projects: projects,
		tasks:    tasks,
		invoices: invoices,
		contacts: contacts,
		company:  companySvc,
		logger:   logger,
	}
}

// Handler builds the route table. The auth middleware wraps everything under
// /api; /health stays open for probes.
func (s *Server) Handler(auth func(http.Handler) http.Handler) http.Handler {
	api := http.NewServeMux()

	// Users
	api.HandleFunc("POST /api/users", requirePermission(org.PermManageUsers, s.handleCreateUser))
	api.HandleFunc("GET /api/users", requirePermission(org.PermRead, s.handleListUsers))
	api.HandleFunc("GET /api/users/{id}", requirePermission(org.PermRead, s.handleGetUser))
	api.HandleFunc("PUT /api/users/{id}", requirePermission(org.PermManageUsers, s.handleUpdateUser))
	api.HandleFunc("DELETE /api/users/{id}", requirePermission(org.PermManageUsers, s.handleDeleteUser))

	// Roles
	api.HandleFunc("POST /api/roles", requirePermission(org.PermManageRoles, s.handleCreateRole))
	api.HandleFunc("GET /api/roles", requirePermission(org.PermRead, s.handleListRoles))
	api.HandleFunc("GET /api/roles/{id}", requirePermission(org.PermRead, s.handleGetRole))
	api.HandleFunc("PUT /api/roles/{id}", requirePermission(org.PermManageRoles, s.handleUpdateRole))
	api.HandleFunc("DELETE /api/roles/{id}", requirePermission(org.PermManageRoles, s.handleDeleteRole))

	// Departments
	api.HandleFunc("POST /api/departments", requirePermission(org.PermManageDepartments, s.handleCreateDepartment))
	api.HandleFunc("GET /api/departments", requirePermission(org.PermRead, s.handleListDepartments))
	api.HandleFunc("GET /api/departments/{id}", requirePermission(org.PermRead, s.handleGetDepartment))
	api.HandleFunc("PUT /api/departments/{id}", requirePermission(org.PermManageDepartments, s.handleUpdateDepartment))
	api.HandleFunc("DELETE /api/departments/{id}", requirePermission(org.PermManageDepartments, s.handleDeleteDepartment))

	// Contacts
	api.HandleFunc("POST /api/contacts", requirePermission(org.PermCreate, s.handleCreateContact))
	api.HandleFunc("GET /api/contacts", requirePermission(org.PermRead, s.handleListContacts))
	api.HandleFunc("GET /api/contacts/{id}", requirePermission(org.PermRead, s.handleGetContact))
	api.HandleFunc("PUT /api/contacts/{id}", requirePermission(org.PermUpdate, s.handleUpdateContact))
	api.HandleFunc("PATCH /api/contacts/{id}/star", requirePermission(org.PermUpdate, s.handleStarContact))
	api.HandleFunc("DELETE /api/contacts/{id}", requirePermission(org.PermDelete, s.handleDeleteContact))

	// Clients
	api.HandleFunc("POST /api/clients", requirePermission(org.PermCreate, s.handleCreateClient))
	api.HandleFunc("GET /api/clients", requirePermission(org.PermRead, s.handleListClients))
	api.HandleFunc("GET /api/clients/{id}", requirePermission(org.PermRead, s.handleGetClient))
	api.HandleFunc("PUT /api/clients/{id}", requirePermission(org.PermUpdate, s.handleUpdateClient))
	api.HandleFunc("DELETE /api/clients/{id}", requirePermission(org.PermDelete, s.handleDeleteClient))

	// Projects
	api.HandleFunc("POST /api/projects", requirePermission(org.PermCreate, s.handleCreateProject))
	api.HandleFunc("GET /api/projects", requirePermission(org.PermRead, s.handleListProjects))
	api.HandleFunc("GET /api/projects/{id}", requirePermission(org.PermRead, s.handleGetProject))
	api.HandleFunc("PUT /api/projects/{id}", requirePermission(org.PermUpdate, s.handleUpdateProject))
	api.HandleFunc("DELETE /api/projects/{id}", requirePermission(org.PermDelete, s.handleDeleteProject))

	// Tasks
	api.HandleFunc("POST /api/tasks", requirePermission(org.PermCreate, s.handleCreateTask))
	api.HandleFunc("GET /api/tasks", requirePermission(org.PermRead, s.handleListTasks))
	api.HandleFunc("GET /api/tasks/{id}", requirePermission(org.PermRead, s.handleGetTask))
	api.HandleFunc("PUT /api/tasks/{id}", requirePermission(org.PermUpdate, s.handleUpdateTask))
	api.HandleFunc("PATCH /api/tasks/{id}/status", requirePermission(org.PermUpdate, s.handleUpdateTaskStatus))
	api.HandleFunc("POST /api/tasks/{id}/assignees", requirePermission(org.PermUpdate, s.handleAssignTask))
	api.HandleFunc("DELETE /api/tasks/{id}/assignees/{userId}", requirePermission(org.PermUpdate, s.handleUnassignTask))
	api.HandleFunc("POST /api/tasks/{id}/attachments", requirePermission(org.PermUpdate, s.handleAttachFile))
	api.HandleFunc("DELETE /api/tasks/{id}/attachments/{attachmentId}", requirePermission(org.PermUpdate, s.handleRemoveAttachment))
	api.HandleFunc("DELETE /api/tasks/{id}", requirePermission(org.PermDelete, s.handleDeleteTask))

	// Invoices
	api.HandleFunc("POST /api/invoices", requirePermission(org.PermCreate, s.handleCreateInvoice))
	api.HandleFunc("GET /api/invoices", requirePermission(org.PermRead, s.handleListInvoices))
	api.HandleFunc("GET /api/invoices/{id}", requirePermission(org.PermRead, s.handleGetInvoice))
	api.HandleFunc("PUT /api/invoices/{id}", requirePermission(org.PermUpdate, s.handleUpdateInvoice))
	api.HandleFunc("PATCH /api/invoices/{id}/pay", requirePermission(org.PermUpdate, s.handleMarkInvoicePaid))
	api.HandleFunc("DELETE /api/invoices/{id}", requirePermission(org.PermDelete, s.handleDeleteInvoice))

	// Company
	api.HandleFunc("GET /api/company", requirePermission(org.PermRead, s.handleGetCompany))
	api.HandleFunc("POST /api/company", requirePermission(org.PermManageDepartments, s.handleCreateCompany))
	api.HandleFunc("PUT /api/company", requirePermission(org.PermManageDepartments, s.handleUpdateCompany))

	root := http.NewServeMux()
	root.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "ok", nil)
	})
	root.Handle("/api/", auth(api))
	return root
}

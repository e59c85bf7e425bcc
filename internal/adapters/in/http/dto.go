package http

import (
	"time"

	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/services"
)

// FileUploadCreate is the request body for staging a file on a draft.
type FileUploadCreate struct {
	Filetype string `json:"filetype"`
	Filesize int64  `json:"filesize"`
}

// FileUploadResponse hands the client the slot reserved for its upload.
type FileUploadResponse struct {
	ID        string `json:"id"`
	ObjectKey string `json:"object_key"`
	UploadURL string `json:"upload_url"`
}

// BuildRangeRequest is one print range of a file in a build request.
type BuildRangeRequest struct {
	Copies         int    `json:"copies"`
	PageRange      string `json:"page_range"`
	PaperVariantID *int32 `json:"paper_variant_id"`
	Orientation    string `json:"orientation"`
	IsColour       bool   `json:"is_colour"`
	IsDoubleSided  bool   `json:"is_double_sided"`
}

// BuildFileRequest names a staged file and how to print it.
type BuildFileRequest struct {
	ID       string              `json:"id"`
	Filename string              `json:"filename"`
	Ranges   []BuildRangeRequest `json:"ranges"`
}

// BuildServiceRequest asks for a finishing service over the named files.
type BuildServiceRequest struct {
	Kind            string   `json:"kind"`
	BindingColourID *int32   `json:"binding_colour_id"`
	Notes           string   `json:"notes"`
	FileIDs         []string `json:"file_ids"`
}

// BuildOrderRequest is the request body that promotes a draft into an order.
type BuildOrderRequest struct {
	Notes    string                `json:"notes"`
	Files    []BuildFileRequest    `json:"files"`
	Services []BuildServiceRequest `json:"services"`
}

// toBuildRequest maps the wire form onto the domain build specification,
// validating enums and identifiers along the way.
func (r BuildOrderRequest) toBuildRequest() (services.BuildRequest, error) {
	files := make([]services.BuildFileSpec, 0, len(r.Files))
	for _, f := range r.Files {
		fileID, err := kernel.UUIDFromString(f.ID)
		if err != nil {
			return services.BuildRequest{}, err
		}

		ranges := make([]order.FileRange, 0, len(f.Ranges))
		for _, rr := range f.Ranges {
			orientation, err := order.PaperOrientationFromString(rr.Orientation)
			if err != nil {
				return services.BuildRequest{}, err
			}

			fileRange, err := order.NewFileRange(
				kernel.NewUUID(),
				rr.Copies,
				rr.PageRange,
				rr.PaperVariantID,
				orientation,
				rr.IsColour,
				rr.IsDoubleSided,
			)
			if err != nil {
				return services.BuildRequest{}, err
			}
			ranges = append(ranges, fileRange)
		}

		files = append(files, services.BuildFileSpec{
			ID:       fileID,
			Filename: f.Filename,
			Ranges:   ranges,
		})
	}

	specs := make([]services.BuildServiceSpec, 0, len(r.Services))
	for _, s := range r.Services {
		kind, err := order.ServiceTypeFromString(s.Kind)
		if err != nil {
			return services.BuildRequest{}, err
		}

		fileIDs := make([]kernel.UUID, 0, len(s.FileIDs))
		for _, raw := range s.FileIDs {
			id, err := kernel.UUIDFromString(raw)
			if err != nil {
				return services.BuildRequest{}, err
			}
			fileIDs = append(fileIDs, id)
		}

		specs = append(specs, services.BuildServiceSpec{
			Kind:            kind,
			BindingColourID: s.BindingColourID,
			Notes:           s.Notes,
			FileIDs:         fileIDs,
		})
	}

	return services.BuildRequest{
		Notes:    r.Notes,
		Files:    files,
		Services: specs,
	}, nil
}

// RangeResponse is the wire form of one print range.
type RangeResponse struct {
	ID             string `json:"id"`
	Copies         int    `json:"copies"`
	PageRange      string `json:"page_range,omitempty"`
	PaperVariantID *int32 `json:"paper_variant_id,omitempty"`
	Orientation    string `json:"orientation"`
	IsColour       bool   `json:"is_colour"`
	IsDoubleSided  bool   `json:"is_double_sided"`
}

// FileResponse is the wire form of one finalized order file.
type FileResponse struct {
	ID        string          `json:"id"`
	Filename  string          `json:"filename"`
	Filetype  string          `json:"filetype"`
	Filesize  int64           `json:"filesize"`
	ObjectKey string          `json:"object_key"`
	Ranges    []RangeResponse `json:"ranges"`
}

// ServiceResponse is the wire form of one finishing service.
type ServiceResponse struct {
	Kind            string   `json:"kind"`
	BindingColourID *int32   `json:"binding_colour_id,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	FileIDs         []string `json:"file_ids"`
}

// StatusUpdateResponse is one row of an order's status history.
type StatusUpdateResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderResponse is the detailed wire form of an order.
type OrderResponse struct {
	ID            string                 `json:"id"`
	CreatedAt     time.Time              `json:"created_at"`
	OwnerID       string                 `json:"owner_id"`
	OrderNumber   string                 `json:"order_number"`
	Status        string                 `json:"status"`
	Notes         string                 `json:"notes,omitempty"`
	Price         *int64                 `json:"price,omitempty"`
	Files         []FileResponse         `json:"files"`
	Services      []ServiceResponse      `json:"services"`
	StatusHistory []StatusUpdateResponse `json:"status_history"`
}

func orderToResponse(o *order.Order) OrderResponse {
	files := make([]FileResponse, 0, len(o.Files()))
	for _, f := range o.Files() {
		ranges := make([]RangeResponse, 0, len(f.Ranges()))
		for _, r := range f.Ranges() {
			ranges = append(ranges, RangeResponse{
				ID:             r.ID().String(),
				Copies:         r.Copies(),
				PageRange:      r.PageRange(),
				PaperVariantID: r.PaperVariantID(),
				Orientation:    r.Orientation().String(),
				IsColour:       r.IsColour(),
				IsDoubleSided:  r.IsDoubleSided(),
			})
		}
		files = append(files, FileResponse{
			ID:        f.ID().String(),
			Filename:  f.Filename(),
			Filetype:  f.Filetype().String(),
			Filesize:  f.Filesize(),
			ObjectKey: f.ObjectKey(),
			Ranges:    ranges,
		})
	}

	svcs := make([]ServiceResponse, 0, len(o.Services()))
	for _, s := range o.Services() {
		fileIDs := make([]string, 0, len(s.FileIDs()))
		for _, id := range s.FileIDs() {
			fileIDs = append(fileIDs, id.String())
		}
		svcs = append(svcs, ServiceResponse{
			Kind:            s.Kind().String(),
			BindingColourID: s.BindingColourID(),
			Notes:           s.Notes(),
			FileIDs:         fileIDs,
		})
	}

	history := make([]StatusUpdateResponse, 0, len(o.StatusHistory()))
	for _, u := range o.StatusHistory() {
		history = append(history, StatusUpdateResponse{
			Status:    u.Status().String(),
			Timestamp: u.Timestamp(),
		})
	}

	return OrderResponse{
		ID:            o.ID().String(),
		CreatedAt:     o.CreatedAt(),
		OwnerID:       o.OwnerID().String(),
		OrderNumber:   o.OrderNumber(),
		Status:        o.Status().String(),
		Notes:         o.Notes(),
		Price:         o.Price(),
		Files:         files,
		Services:      svcs,
		StatusHistory: history,
	}
}

// CompactOrderResponse is the wire form of one dashboard row.
type CompactOrderResponse struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	FilesCount  int       `json:"files_count"`
}

// GlanceResponse is the client dashboard: every ongoing order plus the most
// recently finished ones.
type GlanceResponse struct {
	Ongoing  []CompactOrderResponse `json:"ongoing"`
	Finished []CompactOrderResponse `json:"finished"`
}

func compactOrdersToResponse(orders []queries.CompactOrder) []CompactOrderResponse {
	out := make([]CompactOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, CompactOrderResponse{
			ID:          o.ID.String(),
			CreatedAt:   o.CreatedAt,
			OrderNumber: o.OrderNumber,
			Status:      o.Status,
			FilesCount:  o.FilesCount,
		})
	}
	return out
}

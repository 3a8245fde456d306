package client

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"school-directory/models"
	"school-directory/utils"
)

// MaxImageSize is the largest image the form accepts.
const MaxImageSize = 5 << 20

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif"}

const (
	msgAdded     = "School added successfully!"
	msgAddFailed = "Failed to add school"
	errorPrefix  = "Error: "
)

// ErrBusy is returned by Submit while an earlier submission is in flight.
var ErrBusy = errors.New("submission already in progress")

var fieldMessages = map[string]string{
	"name.required":     "School name is required",
	"address.required":  "Address is required",
	"city.required":     "City is required",
	"state.required":    "State is required",
	"contact.required":  "Contact number is required",
	"contact.contact":   "Contact number must be 10 digits",
	"email_id.required": "Email is required",
	"email_id.email":    "Please enter a valid email",
	"image.required":    "Image is required",
	"image.imagesize":   "File size must be less than 5MB",
	"image.imagetype":   "Only image files are allowed",
}

// ImageFile is an image picked for upload. Its content is not read until
// the form is submitted.
type ImageFile struct {
	Name        string
	Size        int64
	ContentType string
	open        func() (io.ReadCloser, error)
}

// ImageFromFile describes the file at path, sniffing its type from content.
func ImageFromFile(path string) (*ImageFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "stat image")
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "detect image type")
	}
	return &ImageFile{
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: mt.String(),
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// ImageFromBytes wraps data already in memory. An empty contentType is
// sniffed from data.
func ImageFromBytes(name, contentType string, data []byte) *ImageFile {
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}
	return &ImageFile{
		Name:        name,
		Size:        int64(len(data)),
		ContentType: contentType,
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// DataURL reads the whole file and encodes it as a base64 data URL.
func (f *ImageFile) DataURL() (string, error) {
	if f.open == nil {
		return "", errors.Errorf("image %q has no content", f.Name)
	}
	rc, err := f.open()
	if err != nil {
		return "", errors.Wrapf(err, "open %s", f.Name)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", f.Name)
	}
	return utils.EncodeDataURL(f.ContentType, data), nil
}

// SchoolForm is the local state of the creation form. Facilities and
// Achievements are comma separated.
type SchoolForm struct {
	Name         string     `json:"name" validate:"required"`
	Address      string     `json:"address" validate:"required"`
	City         string     `json:"city" validate:"required"`
	State        string     `json:"state" validate:"required"`
	Contact      string     `json:"contact" validate:"required,contact"`
	EmailID      string     `json:"email_id" validate:"required,email"`
	Image        *ImageFile `json:"image" validate:"-"`
	Facilities   string     `json:"facilities"`
	Achievements string     `json:"achievements"`
	Description  string     `json:"description"`
	Established  string     `json:"established"`
	StudentCount string     `json:"studentCount"`
}

func (f *SchoolForm) Reset() {
	*f = SchoolForm{}
}

// FieldError is a validation failure on one form field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("contact", func(fl validator.FieldLevel) bool {
		return utils.IsPhoneNumber(fl.Field().String())
	})
	v.RegisterStructValidation(validateImage, SchoolForm{})
	return v
}

func validateImage(sl validator.StructLevel) {
	form := reflect.Indirect(sl.Current()).Interface().(SchoolForm)
	img := form.Image
	switch {
	case img == nil:
		sl.ReportError(img, "image", "Image", "required", "")
	case img.Size > MaxImageSize:
		sl.ReportError(img, "image", "Image", "imagesize", "")
	case !mimetype.EqualsAny(img.ContentType, allowedImageTypes...):
		sl.ReportError(img, "image", "Image", "imagetype", "")
	}
}

// Validate checks the form without touching the network. The returned error
// is a *multierror.Error of *FieldError, one per failing field.
func (f *SchoolForm) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var result *multierror.Error
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		result = multierror.Append(result, &FieldError{Field: fe.Field(), Message: msg})
	}
	return result.ErrorOrNil()
}

// FieldErrors flattens a Validate error into field -> message.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return out
	}
	for _, e := range merr.Errors {
		var fe *FieldError
		if errors.As(e, &fe) {
			if _, seen := out[fe.Field]; !seen {
				out[fe.Field] = fe.Message
			}
		}
	}
	return out
}

// Submitter drives the creation form: validate, read the image, post.
// While a submission is in flight Busy reports true and further submissions
// are refused.
type Submitter struct {
	client  *Client
	busy    atomic.Bool
	message atomic.String
}

func NewSubmitter(c *Client) *Submitter {
	return &Submitter{client: c}
}

func (s *Submitter) Busy() bool {
	return s.busy.Load()
}

// Message is the banner shown after the last submission.
func (s *Submitter) Message() string {
	return s.message.Load()
}

// Submit validates form and, if it passes, sends it to the API. The form is
// cleared only on success. Validation failures return the Validate error
// and leave the message untouched.
func (s *Submitter) Submit(ctx context.Context, form *SchoolForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.busy.Store(false)
	s.message.Store("")

	image, err := form.Image.DataURL()
	if err != nil {
		s.message.Store(errorPrefix + msgAddFailed)
		return err
	}

	_, err = s.client.CreateSchool(ctx, form.Payload(image))
	if err != nil {
		msg := msgAddFailed
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		s.message.Store(errorPrefix + msg)
		return err
	}

	s.message.Store(msgAdded)
	form.Reset()
	return nil
}

// Payload builds the JSON body for POST /schools with image already encoded.
func (f *SchoolForm) Payload(image string) models.SchoolInput {
	return models.SchoolInput{
		Name:         f.Name,
		Address:      f.Address,
		City:         f.City,
		State:        f.State,
		Contact:      models.Text(f.Contact),
		EmailID:      f.EmailID,
		Image:        image,
		Facilities:   utils.SplitList(f.Facilities),
		Achievements: utils.SplitList(f.Achievements),
		Description:  f.Description,
		Established:  f.Established,
		StudentCount: f.StudentCount,
	}
}

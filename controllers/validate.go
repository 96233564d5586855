package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/tidwall/gjson"

	"github.com/Bombastion/taproom-offering-engine/pkg/resp"
	"github.com/Bombastion/taproom-offering-engine/utils"
)

type fieldType string

const (
	typeString fieldType = "string"
	typeNumber fieldType = "number"
)

type field struct {
	Name string
	Type fieldType
}

// InputError is a request body that failed validation.
type InputError struct {
	Status  int
	Message string
}

func (e *InputError) Error() string { return e.Message }

// validateInput checks that every field is present with the right JSON type.
// A field is missing when absent, null or "". Missing fields are reported
// before type errors.
func validateInput(body []byte, fields []field) error {
	if err := checkObject(body); err != nil {
		return err
	}
	var missing, badTypes []string
	for _, f := range fields {
		v := gjson.GetBytes(body, f.Name)
		if !v.Exists() || v.Type == gjson.Null || (v.Type == gjson.String && v.Str == "") {
			missing = append(missing, f.Name)
			continue
		}
		if !hasType(v, f.Type) {
			badTypes = append(badTypes, fmt.Sprintf("%s must be of type %s", f.Name, f.Type))
		}
	}
	if len(missing) > 0 {
		return &InputError{
			Status:  http.StatusUnprocessableEntity,
			Message: fmt.Sprintf("All of [%s] must be provided", strings.Join(missing, ", ")),
		}
	}
	return typeErrors(badTypes)
}

// validateTypes checks only the fields that are present and not null.
func validateTypes(body []byte, fields []field) error {
	if err := checkObject(body); err != nil {
		return err
	}
	var badTypes []string
	for _, f := range fields {
		v := gjson.GetBytes(body, f.Name)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if !hasType(v, f.Type) {
			badTypes = append(badTypes, fmt.Sprintf("%s must be of type %s", f.Name, f.Type))
		}
	}
	return typeErrors(badTypes)
}

func checkObject(body []byte) error {
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return &InputError{Status: http.StatusBadRequest, Message: "request body must be a JSON object"}
	}
	return nil
}

func typeErrors(badTypes []string) error {
	if len(badTypes) == 0 {
		return nil
	}
	return &InputError{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("The following type errors were found: [%s]", strings.Join(badTypes, ", ")),
	}
}

func hasType(v gjson.Result, t fieldType) bool {
	switch t {
	case typeString:
		return v.Type == gjson.String
	case typeNumber:
		return v.Type == gjson.Number
	}
	return false
}

// readBody returns the raw request body and caches it under gin.BodyBytesKey
// so ShouldBindBodyWith can decode it afterwards.
func readBody(c *gin.Context) ([]byte, error) {
	if cached, ok := c.Get(gin.BodyBytesKey); ok {
		if body, ok := cached.([]byte); ok {
			return body, nil
		}
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	c.Set(gin.BodyBytesKey, body)
	return body, nil
}

// bindCreate validates required fields, type checks the optional ones in
// fields and decodes the body into dest. On failure the response is written
// and false returned.
func bindCreate(c *gin.Context, dest any, required, fields []field) bool {
	return bindBody(c, dest, func(body []byte) error {
		if err := validateInput(body, required); err != nil {
			return err
		}
		return validateTypes(body, fields)
	})
}

// bindPatch type checks whichever of fields are present and decodes the body.
func bindPatch(c *gin.Context, dest any, fields []field) bool {
	return bindBody(c, dest, func(body []byte) error { return validateTypes(body, fields) })
}

// parseForm reads a url encoded or multipart body so a body over the size
// limit is reported rather than read as an empty form.
func parseForm(c *gin.Context) bool {
	var err error
	if c.ContentType() == binding.MIMEMultipartPOSTForm {
		_, err = c.MultipartForm()
	} else {
		err = c.Request.ParseForm()
	}
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		resp.PayloadTooLarge(c, "request body too large")
		return false
	}
	resp.BadRequest(c, "invalid form body: "+err.Error())
	return false
}

func bindBody(c *gin.Context, dest any, validate func([]byte) error) bool {
	body, err := readBody(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			resp.PayloadTooLarge(c, "request body too large")
			return false
		}
		resp.BadRequest(c, "could not read request body")
		return false
	}

	if err := validate(body); err != nil {
		var inputErr *InputError
		if errors.As(err, &inputErr) {
			c.JSON(inputErr.Status, gin.H{"error": inputErr.Message})
			return false
		}
		resp.BadRequest(c, err.Error())
		return false
	}

	if err := c.ShouldBindBodyWith(dest, binding.JSON); err != nil {
		resp.BadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// parseID reads the :id path parameter. Anything that is not an id is a 404.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil {
		resp.NotFound(c, "not found")
		return 0, false
	}
	return uint(id), true
}

// checkLogo rejects a logo that does not decode to an image. Empty clears it.
func checkLogo(c *gin.Context, name string, logo *string) bool {
	if logo == nil || *logo == "" {
		return true
	}
	if _, _, err := utils.DecodeImage(*logo); err != nil {
		resp.BadRequest(c, name+" must be a base64 encoded image")
		return false
	}
	return true
}

package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveName_Styles(t *testing.T) {
	tests := []struct {
		style CaseStyle
		want  string
	}{
		{CamelCase, "datePicker"},
		{CapitalCase, "Date Picker"},
		{ConstantCase, "DATE_PICKER"},
		{DotCase, "date.picker"},
		{HeaderCase, "Date-Picker"},
		{NoCase, "date picker"},
		{ParamCase, "date-picker"},
		{KebabCase, "date-picker"},
		{PascalCase, "DatePicker"},
		{PathCase, "date/picker"},
		{SentenceCase, "Date picker"},
		{SnakeCase, "date_picker"},
	}

	for _, tc := range tests {
		t.Run(string(tc.style), func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveName("DatePicker", tc.style))
		})
	}
}

func TestResolveName_DigitsAndAcronyms(t *testing.T) {
	tests := []struct {
		identifier string
		style      CaseStyle
		want       string
	}{
		{"Button1", ParamCase, "button1"},
		{"H1", ParamCase, "h1"},
		{"IconV2", ParamCase, "icon-v2"},
		{"Heading2Title", ParamCase, "heading2-title"},
		{"QRCode", ParamCase, "qr-code"},
		{"QRCode", CamelCase, "qrCode"},
		{"QRCode", PascalCase, "QrCode"},
		{"QRCode", ConstantCase, "QR_CODE"},
		{"IconV2", SnakeCase, "icon_v2"},
		{"Heading2Title", SentenceCase, "Heading2 title"},
		{"Heading2Title", HeaderCase, "Heading2-Title"},
		{"version_2", PascalCase, "Version_2"},
		{"Menu.Item", ParamCase, "menu-item"},
	}

	for _, tc := range tests {
		t.Run(tc.identifier+"/"+string(tc.style), func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveName(tc.identifier, tc.style))
		})
	}
}

func TestResolveName_NoWords(t *testing.T) {
	assert.Equal(t, "", ResolveName("__", ParamCase))
}

func TestResolveName_DefaultsToParamCase(t *testing.T) {
	assert.Equal(t, "button-group", ResolveName("ButtonGroup", nil))
}

func TestResolveName_CaseFunc(t *testing.T) {
	assert.Equal(t, "BUTTON", ResolveName("Button", CaseFunc(strings.ToUpper)))
}

func TestResolveName_FailuresKeepIdentifier(t *testing.T) {
	assert.Equal(t, "Button", ResolveName("Button", CaseStyle("shoutCase")))

	panicky := CaseFunc(func(string) string { panic("boom") })
	assert.Equal(t, "Button", ResolveName("Button", panicky))
}

func TestParseCaseStyle(t *testing.T) {
	style, err := ParseCaseStyle("snakeCase")
	require.NoError(t, err)
	assert.Equal(t, SnakeCase, style)

	_, err = ParseCaseStyle("shoutCase")
	assert.ErrorIs(t, err, ErrUnknownCaseStyle)
}

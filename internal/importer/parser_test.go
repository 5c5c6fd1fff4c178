package importer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/tankops/internal/apperr"
	"github.com/MrJamesThe3rd/tankops/internal/importer"
)

var brt = time.FixedZone("BRT", -3*60*60)

func TestParser_Medicao(t *testing.T) {
	csv := `Relatório de medição - Posto Central
Tanque;T1 Diesel S10
Capacidade;15.000 L

Data;Hora;Produto;Volume (L);Água (mm);Temperatura
10/05/2024;06:00;DIESEL S10;3.250,500;0;24,1
10/05/2024;14:00:30;DIESEL S10;2.900,000;0;26,3
;;;Página 1/1;;
`

	p := importer.NewParser(brt)
	readings, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, readings, 2)

	assert.Equal(t, time.Date(2024, 5, 10, 6, 0, 0, 0, brt), readings[0].TakenAt)
	assert.Equal(t, "3250.5", readings[0].LiterValue.String())

	assert.Equal(t, time.Date(2024, 5, 10, 14, 0, 30, 0, brt), readings[1].TakenAt)
	assert.Equal(t, "2900", readings[1].LiterValue.String())
}

func TestParser_ATGCommaSeparated(t *testing.T) {
	csv := `Tank,Product,Date Time,Volume,Ullage
1,DIESEL,2024-05-10 06:00:00,"3,250.5",11749.5
1,DIESEL,2024-05-10T18:00:00,2900,12100
`

	p := importer.NewParser(time.UTC)
	readings, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, readings, 2)

	assert.Equal(t, time.Date(2024, 5, 10, 6, 0, 0, 0, time.UTC), readings[0].TakenAt)
	assert.Equal(t, "3250.5", readings[0].LiterValue.String())
	assert.Equal(t, time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC), readings[1].TakenAt)
}

func TestParser_Latin1Encoding(t *testing.T) {
	utf8CSV := "Data;Hora;Volume (L);Observação\n10/05/2024;06:00;1.000,0;Medição manual\n"

	latin1Bytes, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	readings, err := importer.NewParser(nil).Parse(bytes.NewReader(latin1Bytes))
	require.NoError(t, err)
	require.Len(t, readings, 1)

	assert.Equal(t, "1000", readings[0].LiterValue.String())
}

func TestParser_UTF16Export(t *testing.T) {
	utf8CSV := "Date Time;Volume\n2024-05-10 06:00;1200,25\n"

	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	readings, err := importer.NewParser(time.UTC).Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, readings, 1)

	assert.Equal(t, "1200.25", readings[0].LiterValue.String())
}

func TestParser_InvalidVolume(t *testing.T) {
	csv := `Data;Hora;Volume (L)
10/05/2024;06:00;1.000,0
10/05/2024;07:00;n/d
10/05/2024;08:00;
`

	_, err := importer.NewParser(time.UTC).Parse(strings.NewReader(csv))

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Equal(t, []string{`invalid volume "n/d"`}, appErr.Fields["row 3"])
	assert.Equal(t, []string{`invalid volume ""`}, appErr.Fields["row 4"])
}

func TestParser_UnknownFormat(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{name: "empty file", csv: ""},
		{name: "bank statement", csv: "Data mov.;Descrição;Montante\n30-01-2026;TEST;-10,00\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.NewParser(time.UTC).Parse(strings.NewReader(tt.csv))
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestParser_HeaderOnly(t *testing.T) {
	readings, err := importer.NewParser(time.UTC).Parse(strings.NewReader("Data;Hora;Volume (L)\n"))
	require.NoError(t, err)
	assert.Empty(t, readings)
}

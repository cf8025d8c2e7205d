package feed

import (
	"strings"
	"testing"

	"github.com/Veraticus/sapra/internal/common"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/Veraticus/sapra/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecords(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Record
		wantErr bool
	}{
		{
			name:  "header only",
			input: "a,b\n",
		},
		{
			name:  "empty document",
			input: "",
		},
		{
			name:  "byte order mark",
			input: "\ufeffa,b\n1,2\n",
			want:  []Record{{"a": "1", "b": "2"}},
		},
		{
			name:  "blank lines skipped",
			input: "a,b\n\n1,2\n , \n3,4\n",
			want:  []Record{{"a": "1", "b": "2"}, {"a": "3", "b": "4"}},
		},
		{
			name:  "short rows padded",
			input: "a,b,c\n1\n",
			want:  []Record{{"a": "1", "b": "", "c": ""}},
		},
		{
			name:  "quoted fields",
			input: "a,b\n\"x, y\",\"say \"\"hi\"\"\"\n",
			want:  []Record{{"a": "x, y", "b": `say "hi"`}},
		},
		{
			name:    "broken quotes",
			input:   "a,b\n\"unterminated,2\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadRecords(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrMalformedFeed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMain(t *testing.T) {
	rows := testutil.NewRowBuilder(t).WithFixture(testutil.FixturePlant).Build()

	got, err := ParseMain(strings.NewReader(testutil.MainCSV(t, rows)))
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestParseItems(t *testing.T) {
	input := "SD_Sub_System,Discipline_Name,ITEM_Tag_NO,ITEM_Type_Code,ITEM_Description,ITEM_Status\n" +
		" SS1 ,Elec,T1,CB,Breaker, Done \n" +
		"SS2,Inst,T2\n"

	got, err := ParseItems(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []model.DetailItem{
		{Subsystem: "SS1", Discipline: "Elec", TagNo: "T1", TypeCode: "CB", Description: "Breaker", Status: "Done"},
		{Subsystem: "SS2", Discipline: "Inst", TagNo: "T2"},
	}, got)
}

func TestParsePunch(t *testing.T) {
	input := "SD_SUB_SYSTEM,Discipline_Name,ITEM_Tag_NO,ITEM_Type_Code,PL_Punch_Category,PL_Punch_Description\n" +
		"SS1,Elec,P1,,A,Loose gland\n"

	got, err := ParsePunch(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []model.PunchItem{
		{Subsystem: "SS1", Discipline: "Elec", TagNo: "P1", Category: "A", Description: "Loose gland"},
	}, got)
}

func TestParseHold(t *testing.T) {
	input := "SD_SUB_SYSTEM,Discipline_Name,ITEM_Tag_NO,ITEM_Type_Code,HP_Priority,HP_Description,HP_Location\n" +
		"SS1,Elec,H1,X,1,Witness test,Bay 2\n"

	got, err := ParseHold(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []model.HoldPointItem{
		{Subsystem: "SS1", Discipline: "Elec", TagNo: "H1", TypeCode: "X", Priority: "1", Description: "Witness test", Location: "Bay 2"},
	}, got)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package vehicle

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/carchat/internal/locale"
)

const sampleResult = `{
  "action": "search",
  "success": true,
  "ai_response": "Ecco tre **ibride** sotto i 25.000 euro.",
  "search_params": {"fuel_type": "hybrid", "max_price": 25000},
  "vehicle_ids": [12, 7],
  "vehicles": [
    {"id": 12, "brand": "Toyota", "model": "Yaris", "version": "1.5 Hybrid",
     "fuel_type": "hybrid", "public_price": "18900.00", "mileage": 42000,
     "initial_registration": "2019-03-01T00:00:00Z", "searchScore": 0.87,
     "doors": "5", "consumption_combined": "3,8", "ubicazione_descrizione": "Milano"},
    {"id": 7, "brand": "Kia", "model": "Niro", "public_price": null}
  ]
}`

func TestSearchResult_Decode(t *testing.T) {
	var res SearchResult
	require.NoError(t, json.Unmarshal([]byte(sampleResult), &res))

	assert.Equal(t, ActionSearch, res.Action)
	assert.True(t, res.Success)
	assert.False(t, res.IsDetails())
	assert.Equal(t, []int64{12, 7}, res.VehicleIDs)
	assert.JSONEq(t, `{"fuel_type":"hybrid","max_price":25000}`, string(res.Params))
	require.Len(t, res.Vehicles, 2)

	got := res.Vehicles[0]
	want := Vehicle{
		ID:                  12,
		Brand:               "Toyota",
		Model:               "Yaris",
		Version:             "1.5 Hybrid",
		FuelType:            "hybrid",
		PublicPrice:         NewNumber(18900),
		Mileage:             NewNumber(42000),
		InitialRegistration: "2019-03-01T00:00:00Z",
		SearchScore:         NewNumber(0.87),
		Doors:               NewNumber(5),
		ConsumptionCombined: NewNumber(3.8),
		Location:            "Milano",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded vehicle mismatch (-want +got):\n%s", diff)
	}

	assert.Nil(t, res.Vehicles[1].PublicPrice)
}

func TestNumber_InvalidStringIsMissing(t *testing.T) {
	var v Vehicle
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "mileage": "lots"}`), &v))
	require.NotNil(t, v.Mileage)
	assert.Equal(t, "N/A", v.MileageText(locale.English))

	var res SearchResult
	body := `{"action":"search","success":true,"vehicles":[{"id":1,"doors":"5 porte"},{"id":2}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	require.Len(t, res.Vehicles, 2)
	assert.Equal(t, []int64{1, 2}, IDs(res.Vehicles))
	assert.Empty(t, res.Vehicles[0].Badges(locale.Italian))
}

func TestNumber_InvalidJSONStillFails(t *testing.T) {
	var v Vehicle
	assert.Error(t, json.Unmarshal([]byte(`{"id": 1, "mileage": true}`), &v))
}

func TestNumber_EmptyString(t *testing.T) {
	var v Vehicle
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "mileage": ""}`), &v))
	require.NotNil(t, v.Mileage)
	assert.Equal(t, "N/A", v.MileageText(locale.English))
}

func TestVehicle_Title(t *testing.T) {
	tests := []struct {
		name string
		v    Vehicle
		want string
	}{
		{"full", Vehicle{Brand: "Fiat", Model: "Panda", Version: "1.0 Hybrid"}, "Fiat Panda 1.0 Hybrid"},
		{"no version", Vehicle{Brand: "Fiat", Model: "Panda"}, "Fiat Panda"},
		{"blank middle", Vehicle{Brand: "Fiat", Model: " ", Version: "Cross"}, "Fiat Cross"},
		{"empty", Vehicle{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Title())
		})
	}
}

func TestVehicle_Year(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"2019-03-01T00:00:00Z", 2019, true},
		{"2021-11-15T10:00:00+01:00", 2021, true},
		{"2018-06-30", 2018, true},
		{"2020-02", 2020, true},
		{"2017", 2017, true},
		{"", 0, false},
		{"yesterday", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v := Vehicle{InitialRegistration: tt.in}
			got, ok := v.Year()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVehicle_HasConsumption(t *testing.T) {
	assert.False(t, (&Vehicle{}).HasConsumption())
	assert.False(t, (&Vehicle{ConsumptionUrban: NewNumber(0)}).HasConsumption())
	assert.True(t, (&Vehicle{CO2: NewNumber(98)}).HasConsumption())
	assert.True(t, (&Vehicle{ConsumptionCombined: NewNumber(4.1)}).HasConsumption())
}

func TestVehicle_Formatting(t *testing.T) {
	v := Vehicle{
		PublicPrice:         NewNumber(25000),
		Mileage:             NewNumber(123456),
		InitialRegistration: "2019-03-01",
		Kilowatt:            NewNumber(85),
		Capacity:            NewNumber(1498),
		KerbWeight:          NewNumber(1120),
		ConsumptionUrban:    NewNumber(4.5),
		CO2:                 NewNumber(102),
	}

	assert.Equal(t, "€25,000", v.PriceText(locale.English))
	assert.Equal(t, "€25.000", v.PriceText(locale.Italian))
	assert.Equal(t, "123,456 km", v.MileageText(locale.English))
	assert.Equal(t, "123.456 km", v.MileageText(locale.German))
	assert.Equal(t, "2019", v.YearText(locale.German))
	assert.Equal(t, "85 kW", v.PowerText(locale.English))
	assert.Equal(t, "1498 cc", v.EngineText(locale.English))
	assert.Equal(t, "1120 kg", v.WeightText(locale.English))
	assert.Equal(t, "4.5 L/100km", v.UrbanText(locale.Italian))
	assert.Equal(t, "102 g/km", v.EmissionsText(locale.French))
	assert.Equal(t, "N/A", v.CombinedText(locale.French))
	assert.Equal(t, "N/A", v.DoorsText(locale.Spanish))
}

func TestVehicle_MissingValues(t *testing.T) {
	v := Vehicle{PublicPrice: NewNumber(0)}
	for _, lang := range locale.Codes() {
		assert.Equal(t, "N/A", v.PriceText(lang), lang)
		assert.Equal(t, "N/A", v.MileageText(lang), lang)
		assert.Equal(t, "N/A", v.YearText(lang), lang)
	}
	_, ok := v.ScoreText()
	assert.False(t, ok)
	assert.Equal(t, "N/A", Text(locale.English, "  "))
	assert.Equal(t, "Diesel", Text(locale.English, "Diesel"))
}

func TestVehicle_Badges(t *testing.T) {
	v := Vehicle{Body: "SUV", Doors: NewNumber(5), ConsumptionCombined: NewNumber(5.2)}
	assert.Equal(t, []string{"SUV", "5 doors", "5.2L/100km"}, v.Badges(locale.English))
	assert.Equal(t, []string{"SUV", "5 porte", "5.2L/100km"}, v.Badges(locale.Italian))
	assert.Empty(t, (&Vehicle{}).Badges(locale.English))
}

func TestNewContext(t *testing.T) {
	assert.Nil(t, NewContext(nil))
	ctx := NewContext([]Vehicle{{ID: 3}, {ID: 1}, {ID: 2}})
	require.NotNil(t, ctx)
	assert.Equal(t, []int64{3, 1, 2}, ctx.LastSearchResults)

	data, err := json.Marshal(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"last_search_results":[3,1,2]}`, string(data))

	empty := NewContext([]Vehicle{})
	require.NotNil(t, empty)
	data, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"last_search_results":[]}`, string(data))
}

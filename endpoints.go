package mermaid

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/mermaid-go/mermaid/records"
	"go.uber.org/zap"
)

// Endpoint paths of the API.
const (
	endpointDatastore   = "datastore_search"
	endpointAirSensors  = "air_sensors_get"
	endpointAED         = "aed_get"
	endpointBusesTrams  = "busestrams_get"
	endpointDBTimetable = "dbtimetable_get"
	endpointDBStore     = "dbstore_get"
	endpointWFSStore    = "wfsstore_get"
	endpointCompanies   = "get_companies"
	endpointCategories  = "get_categories_tree"
	endpointDistricts   = "get_districts"
	endpointOpenInvests = "get_open_invests"
)

// Dataset resource identifiers, fixed per the API catalog.
const (
	resourceShrubs          = "0b1af81f-247d-4266-9823-693858ad5b5d"
	resourceShrubsGroups    = "4b792a76-5349-4aad-aa16-dadaf0a74be3"
	resourceForests         = "75bedfd5-6c83-426b-9ae5-f03651857a48"
	resourceTrees           = "ed6217dd-c8d0-4f7b-8bed-3b7eb81a95ba"
	resourceTreesGroups     = "913856f7-f71b-4638-abe2-12df14334e1a"
	resourceMunicipalWaste  = "64b9d66c-d134-4a87-9f24-258676e9e498"
	resourceVehicles        = "f2e5503e-927d-4ad3-9500-4ab9e55deb59"
	resourceStopSet         = "b27f4c17-5c50-4a5b-89dd-236b282bc499"
	resourceStopLines       = "88cd555f-6f31-43ca-9de4-66c479ad5942"
	resourceLineTimetable   = "e923fa0e-d96c-43f9-ae6e-60518c9f3238"
	resourceCycleTracks     = "8a235d27-b96a-4876-9b92-9e164940c9b6"
	resourceCycleStations   = "a08136ec-1037-4029-9aa5-b0d0ee0b9d88"
	resourceParkingLots     = "157648fd-a603-4861-af96-884a8e35b155"
	resourceSubwayEntrances = "0ac7f6d1-a26b-430f-9e3d-a41c5356b9a3"
	resourceStopInfo        = "ab75c33d-3a26-4342-b36a-6e5fef0a3ac3"
	resourceStopInfoToday   = "1c08a38c-ae09-46d2-8926-4f9d25cb0630"
	resourceTheaters        = "e26218cb-61ec-4ccb-81cc-fd19a6fee0f8"
	resourceRWCompanies     = "2aa01577-9f24-4b8e-83f5-d3d15f6d094b"
	resourceRWCategories    = "e1c8fb95-9979-418d-bf5b-6bdfd586555b"
	resourceRWDistricts     = "f3469922-27e3-4d2f-811d-8efa2e448606"
	resourceRWInvestments   = "26b9ade1-f5d4-439e-84b4-9af37ab7ebf1"
)

// SearchParams narrows a datastore_search query. The zero value returns
// everything the dataset holds.
type SearchParams struct {
	// Limit caps the number of returned rows; zero means no cap.
	Limit int
	// Query is a free-text search over all columns.
	Query string
	// Filters is a JSON object of column/value pairs, passed through as-is.
	Filters string
}

func (p SearchParams) values(resourceID string) url.Values {
	v := url.Values{}
	v.Set("resource_id", resourceID)
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Query != "" {
		v.Set("q", p.Query)
	}
	if p.Filters != "" {
		v.Set("filters", p.Filters)
	}
	return v
}

// AreaParams narrows a WFS query to an area. The zero value returns every
// feature.
type AreaParams struct {
	// Limit caps the number of returned features; zero means no cap.
	Limit int
	// BBox is "min_lon,min_lat,max_lon,max_lat".
	BBox string
	// Circle is "lon,lat,radius_in_meters".
	Circle string
	// Filter is the API's XML filter expression.
	Filter string
}

func (p AreaParams) values(resourceID, apiKey string) url.Values {
	v := url.Values{}
	v.Set("id", resourceID)
	v.Set("apikey", apiKey)
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.BBox != "" {
		v.Set("bbox", p.BBox)
	}
	if p.Circle != "" {
		v.Set("circle", p.Circle)
	}
	if p.Filter != "" {
		v.Set("filter", p.Filter)
	}
	return v
}

// StopInfoParams pages through the stop registry.
type StopInfoParams struct {
	Page   int
	Size   int
	SortBy string
	// CurrentDay selects the registry variant valid for today only.
	CurrentDay bool
}

// InvestmentParams narrows a road works investment query.
type InvestmentParams struct {
	// PageSize defaults to 2; the API returns nothing without it.
	PageSize       int
	StartIndex     int
	InvestmentName string
	StreetName     string
	CompanyCode    string
	// InvestmentNumber selects one investment by its number.
	InvestmentNumber string
}

// mapItems runs every raw item through the variant factory, failing the
// whole batch on the first construction error.
func mapItems[T any](items []records.Item, build func(records.Item) (T, error)) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		rec, err := build(item)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// resultRecords unwraps the datastore_search envelope.
func resultRecords(endpoint string, raw json.RawMessage) ([]records.Item, error) {
	var result struct {
		Records []records.Item `json:"records"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &ResponseFormatError{Endpoint: endpoint, Err: err}
	}
	return result.Records, nil
}

// resultList unwraps endpoints whose result is a bare item list.
func resultList(endpoint string, raw json.RawMessage) ([]records.Item, error) {
	var items []records.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ResponseFormatError{Endpoint: endpoint, Err: err}
	}
	return items, nil
}

// resultFeatures unwraps the WFS envelope.
func resultFeatures(endpoint string, raw json.RawMessage) ([]records.Item, error) {
	var result struct {
		FeatureMemberProperties []records.Item `json:"featureMemberProperties"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &ResponseFormatError{Endpoint: endpoint, Err: err}
	}
	return result.FeatureMemberProperties, nil
}

type kvPair struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type kvRow struct {
	Values []kvPair `json:"values"`
}

// resultKeyValues unwraps the dbtimetable/dbstore envelope, folding each
// row's key/value pairs into a plain item.
func resultKeyValues(endpoint string, raw json.RawMessage) ([]records.Item, error) {
	var rows []kvRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, &ResponseFormatError{Endpoint: endpoint, Err: err}
	}
	items := make([]records.Item, 0, len(rows))
	for _, row := range rows {
		item := make(records.Item, len(row.Values))
		for _, kv := range row.Values {
			item[kv.Key] = kv.Value
		}
		items = append(items, item)
	}
	return items, nil
}

// Trees returns the individual-tree inventory.
func (c *Client) Trees(ctx context.Context, p SearchParams) ([]records.Tree, error) {
	return fetchDatastore(c, ctx, resourceTrees, p, records.NewTree)
}

// TreesGroups returns the tree-group inventory.
func (c *Client) TreesGroups(ctx context.Context, p SearchParams) ([]records.TreesGroup, error) {
	return fetchDatastore(c, ctx, resourceTreesGroups, p, records.NewTreesGroup)
}

// Shrubs returns the individual-shrub inventory.
func (c *Client) Shrubs(ctx context.Context, p SearchParams) ([]records.Shrub, error) {
	return fetchDatastore(c, ctx, resourceShrubs, p, records.NewShrub)
}

// ShrubsGroups returns the shrub-group inventory.
func (c *Client) ShrubsGroups(ctx context.Context, p SearchParams) ([]records.ShrubsGroup, error) {
	return fetchDatastore(c, ctx, resourceShrubsGroups, p, records.NewShrubsGroup)
}

// Forests returns the municipal forest registry.
func (c *Client) Forests(ctx context.Context, p SearchParams) ([]records.Forest, error) {
	return fetchDatastore(c, ctx, resourceForests, p, records.NewForest)
}

// MunicipalWaste returns the waste-segregation dictionary.
func (c *Client) MunicipalWaste(ctx context.Context, p SearchParams) ([]records.MunicipalWaste, error) {
	return fetchDatastore(c, ctx, resourceMunicipalWaste, p, records.NewMunicipalWaste)
}

// fetchDatastore runs one datastore_search accessor. These datasets are
// public and take no API key.
func fetchDatastore[T any](c *Client, ctx context.Context, resourceID string, p SearchParams, build func(records.Item) (T, error)) ([]T, error) {
	raw, err := c.getResult(ctx, endpointDatastore, p.values(resourceID))
	if err != nil {
		return nil, err
	}
	items, err := resultRecords(endpointDatastore, raw)
	if err != nil {
		return nil, err
	}
	recs, err := mapItems(items, build)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Datastore fetch complete",
		zap.String("resource_id", resourceID),
		zap.Int("count", len(recs)))
	return recs, nil
}

// fetchWFS runs one wfsstore_get accessor.
func fetchWFS[T any](c *Client, ctx context.Context, resourceID string, p AreaParams, build func(records.Item) (T, error)) ([]T, error) {
	raw, err := c.getResult(ctx, endpointWFSStore, p.values(resourceID, c.apiKey))
	if err != nil {
		return nil, err
	}
	items, err := resultFeatures(endpointWFSStore, raw)
	if err != nil {
		return nil, err
	}
	return mapItems(items, build)
}

// AirQuality returns the current reading of every air quality station.
func (c *Client) AirQuality(ctx context.Context) ([]records.AirQuality, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	raw, err := c.getResult(ctx, endpointAirSensors, params)
	if err != nil {
		return nil, err
	}
	items, err := resultList(endpointAirSensors, raw)
	if err != nil {
		return nil, err
	}
	return mapItems(items, records.NewAirQuality)
}

// Defibrillators returns registered AED devices. A non-empty
// defibrillatorID selects one device, whose record then carries a Base64
// photo attachment.
func (c *Client) Defibrillators(ctx context.Context, defibrillatorID string) ([]records.Defibrillator, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	if defibrillatorID != "" {
		params.Set("defibrillator_id", defibrillatorID)
	}
	raw, err := c.getResult(ctx, endpointAED, params)
	if err != nil {
		return nil, err
	}
	items, err := resultList(endpointAED, raw)
	if err != nil {
		return nil, err
	}
	return mapItems(items, records.NewDefibrillator)
}

// Vehicle types of the live position feed.
const (
	VehicleTypeBus  = 1
	VehicleTypeTram = 2
)

// VehicleLocations returns live bus or tram positions, optionally narrowed
// to one line and brigade.
func (c *Client) VehicleLocations(ctx context.Context, vehicleType int, line, brigade string) ([]records.VehicleLocation, error) {
	params := url.Values{}
	params.Set("resource_id", resourceVehicles)
	params.Set("apikey", c.apiKey)
	params.Set("type", strconv.Itoa(vehicleType))
	if line != "" {
		params.Set("line", line)
	}
	if brigade != "" {
		params.Set("brigade", brigade)
	}
	raw, err := c.getResult(ctx, endpointBusesTrams, params)
	if err != nil {
		return nil, err
	}
	items, err := resultList(endpointBusesTrams, raw)
	if err != nil {
		return nil, err
	}
	return mapItems(items, records.NewVehicleLocation)
}

// StopSet resolves a stop name to its set number.
func (c *Client) StopSet(ctx context.Context, stopName string) (records.StopSet, error) {
	params := url.Values{}
	params.Set("id", resourceStopSet)
	params.Set("name", stopName)
	params.Set("apikey", c.apiKey)
	raw, err := c.getResult(ctx, endpointDBTimetable, params)
	if err != nil {
		return records.StopSet{}, err
	}

	// The set lookup identifies fields by position, not by key.
	var rows []struct {
		Values []kvPair `json:"values"`
	}
	if err := json.Unmarshal(raw, &rows); err != nil {
		return records.StopSet{}, &ResponseFormatError{Endpoint: endpointDBTimetable, Err: err}
	}
	if len(rows) == 0 || len(rows[0].Values) < 2 {
		return records.StopSet{}, &ResponseFormatError{
			Endpoint: endpointDBTimetable,
			Err:      fmt.Errorf("expected at least one row with two values"),
		}
	}
	setNumber, _ := rows[0].Values[0].Value.(string)
	name, _ := rows[0].Values[1].Value.(string)
	return records.StopSet{StopName: name, SetNumber: setNumber}, nil
}

// StopLines returns the lines calling at one stop bar.
func (c *Client) StopLines(ctx context.Context, busStopID, busStopNumber string) ([]records.StopLine, error) {
	params := url.Values{}
	params.Set("id", resourceStopLines)
	params.Set("busstopId", busStopID)
	params.Set("busstopNr", busStopNumber)
	params.Set("apikey", c.apiKey)
	raw, err := c.getResult(ctx, endpointDBTimetable, params)
	if err != nil {
		return nil, err
	}

	var rows []kvRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, &ResponseFormatError{Endpoint: endpointDBTimetable, Err: err}
	}
	lines := make([]records.StopLine, 0, len(rows))
	for _, row := range rows {
		if len(row.Values) == 0 {
			return nil, &ResponseFormatError{
				Endpoint: endpointDBTimetable,
				Err:      fmt.Errorf("expected a line value per row"),
			}
		}
		number, _ := row.Values[0].Value.(string)
		lines = append(lines, records.StopLine{LineNumber: number})
	}
	return lines, nil
}

// LineTimetable returns the departures of one line from one stop bar.
func (c *Client) LineTimetable(ctx context.Context, busStopID, busStopNumber, line string) ([]records.TimetableEntry, error) {
	params := url.Values{}
	params.Set("id", resourceLineTimetable)
	params.Set("busstopId", busStopID)
	params.Set("busstopNr", busStopNumber)
	params.Set("line", line)
	params.Set("apikey", c.apiKey)
	raw, err := c.getResult(ctx, endpointDBTimetable, params)
	if err != nil {
		return nil, err
	}
	items, err := resultKeyValues(endpointDBTimetable, raw)
	if err != nil {
		return nil, err
	}
	return mapItems(items, records.NewTimetableEntry)
}

// StopInfo returns the stop registry, paged.
func (c *Client) StopInfo(ctx context.Context, p StopInfoParams) ([]records.StopInfo, error) {
	resourceID := resourceStopInfo
	if p.CurrentDay {
		resourceID = resourceStopInfoToday
	}
	params := url.Values{}
	params.Set("id", resourceID)
	params.Set("apikey", c.apiKey)
	if p.Page > 0 {
		params.Set("page", strconv.Itoa(p.Page))
	}
	if p.Size > 0 {
		params.Set("size", strconv.Itoa(p.Size))
	}
	if p.SortBy != "" {
		params.Set("sortBy", p.SortBy)
	}
	raw, err := c.getResult(ctx, endpointDBStore, params)
	if err != nil {
		return nil, err
	}
	items, err := resultKeyValues(endpointDBStore, raw)
	if err != nil {
		return nil, err
	}
	return mapItems(items, records.NewStopInfo)
}

// CycleTracks returns the cycling network.
func (c *Client) CycleTracks(ctx context.Context, p AreaParams) ([]records.CycleTrack, error) {
	return fetchWFS(c, ctx, resourceCycleTracks, p, records.NewCycleTrack)
}

// CycleStations returns public bike stations with live availability.
func (c *Client) CycleStations(ctx context.Context, p AreaParams) ([]records.CycleStation, error) {
	return fetchWFS(c, ctx, resourceCycleStations, p, records.NewCycleStation)
}

// ParkingLots returns park-and-ride lots.
func (c *Client) ParkingLots(ctx context.Context, p AreaParams) ([]records.ParkingLot, error) {
	return fetchWFS(c, ctx, resourceParkingLots, p, records.NewParkingLot)
}

// SubwayEntrances returns metro entrances.
func (c *Client) SubwayEntrances(ctx context.Context, p AreaParams) ([]records.SubwayEntrance, error) {
	return fetchWFS(c, ctx, resourceSubwayEntrances, p, records.NewSubwayEntrance)
}

// Theaters returns the theater registry.
func (c *Client) Theaters(ctx context.Context, p AreaParams) ([]records.Theater, error) {
	return fetchWFS(c, ctx, resourceTheaters, p, records.NewTheater)
}

// RoadWorksCompanies returns contractors performing road works.
func (c *Client) RoadWorksCompanies(ctx context.Context) ([]records.RoadWorksCompany, error) {
	items, err := c.fetchComboItems(ctx, endpointCompanies, resourceRWCompanies)
	if err != nil {
		return nil, err
	}
	return mapItems(items, records.NewRoadWorksCompany)
}

// RoadWorksDistricts returns districts with ongoing road works.
func (c *Client) RoadWorksDistricts(ctx context.Context) ([]records.RoadWorksDistrict, error) {
	items, err := c.fetchComboItems(ctx, endpointDistricts, resourceRWDistricts)
	if err != nil {
		return nil, err
	}
	return mapItems(items, records.NewRoadWorksDistrict)
}

func (c *Client) fetchComboItems(ctx context.Context, endpoint, resourceID string) ([]records.Item, error) {
	params := url.Values{}
	params.Set("resource_id", resourceID)
	params.Set("apikey", c.apiKey)
	raw, err := c.getResult(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	var result struct {
		Items struct {
			ComboItem []records.Item `json:"ComboItem"`
		} `json:"Items"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &ResponseFormatError{Endpoint: endpoint, Err: err}
	}
	return result.Items.ComboItem, nil
}

// RoadWorksCategories returns the road works category tree.
func (c *Client) RoadWorksCategories(ctx context.Context) ([]records.RoadWorksCategory, error) {
	params := url.Values{}
	params.Set("resource_id", resourceRWCategories)
	params.Set("apikey", c.apiKey)
	raw, err := c.getResult(ctx, endpointCategories, params)
	if err != nil {
		return nil, err
	}
	var result struct {
		CategoryTreeNode []records.Item `json:"CategoryTreeNode"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &ResponseFormatError{Endpoint: endpointCategories, Err: err}
	}
	return mapItems(result.CategoryTreeNode, records.NewRoadWorksCategory)
}

// RoadWorksInvestments returns open road works investments. The feed
// collapses a single match into a bare object instead of a one-element
// list.
func (c *Client) RoadWorksInvestments(ctx context.Context, p InvestmentParams) ([]records.RoadWorksInvestment, error) {
	if p.PageSize <= 0 {
		p.PageSize = 2
	}
	params := url.Values{}
	params.Set("resource_id", resourceRWInvestments)
	params.Set("apikey", c.apiKey)
	params.Set("pageSize", strconv.Itoa(p.PageSize))
	if p.StartIndex > 0 {
		params.Set("StartIndex", strconv.Itoa(p.StartIndex))
	}
	if p.InvestmentName != "" {
		params.Set("investmentName", p.InvestmentName)
	}
	if p.StreetName != "" {
		params.Set("streetName", p.StreetName)
	}
	if p.CompanyCode != "" {
		params.Set("companyCode", p.CompanyCode)
	}
	if p.InvestmentNumber != "" {
		params.Set("investmentNumber", p.InvestmentNumber)
	}

	raw, err := c.getResult(ctx, endpointOpenInvests, params)
	if err != nil {
		return nil, err
	}
	var result struct {
		Items struct {
			InvestItem json.RawMessage `json:"InvestItem"`
		} `json:"Items"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &ResponseFormatError{Endpoint: endpointOpenInvests, Err: err}
	}

	var items []records.Item
	if err := json.Unmarshal(result.Items.InvestItem, &items); err != nil {
		var single records.Item
		if err := json.Unmarshal(result.Items.InvestItem, &single); err != nil {
			return nil, &ResponseFormatError{Endpoint: endpointOpenInvests, Err: err}
		}
		items = []records.Item{single}
	}
	return mapItems(items, records.NewRoadWorksInvestment)
}

package simulator

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/chrisdamba/surplussim/internal/models"
)

const (
	TopicVendors         = "vendors"
	TopicProducts        = "products"
	TopicBundles         = "bundles"
	TopicBundleProducts  = "bundle_products"
	TopicReservations    = "reservations"
	TopicUsers           = "users"
	TopicDisputes        = "disputes"
	TopicDataset         = "dataset"
	TopicLifecycleEvents = "lifecycle_events"
)

// Topics lists every topic in write order: parents before the rows that
// reference them.
var Topics = []string{
	TopicVendors,
	TopicProducts,
	TopicUsers,
	TopicBundles,
	TopicBundleProducts,
	TopicReservations,
	TopicDisputes,
	TopicDataset,
	TopicLifecycleEvents,
}

// Every record carries a timestamp in unix seconds; file sinks partition on it.

type VendorRecord struct {
	Timestamp  int64   `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	VendorID   string  `json:"vendor_id" parquet:"name=vendor_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Name       string  `json:"name" parquet:"name=name,type=BYTE_ARRAY,convertedtype=UTF8"`
	Archetype  string  `json:"archetype" parquet:"name=archetype,type=BYTE_ARRAY,convertedtype=UTF8"`
	Postcode   string  `json:"postcode" parquet:"name=postcode,type=BYTE_ARRAY,convertedtype=UTF8"`
	Lat        float64 `json:"lat" parquet:"name=lat,type=DOUBLE"`
	Lon        float64 `json:"lon" parquet:"name=lon,type=DOUBLE"`
	Categories string  `json:"categories" parquet:"name=categories,type=BYTE_ARRAY,convertedtype=UTF8"`
}

type ProductRecord struct {
	Timestamp   int64   `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	ProductID   string  `json:"product_id" parquet:"name=product_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	VendorID    string  `json:"vendor_id" parquet:"name=vendor_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Name        string  `json:"name" parquet:"name=name,type=BYTE_ARRAY,convertedtype=UTF8"`
	Category    string  `json:"category" parquet:"name=category,type=BYTE_ARRAY,convertedtype=UTF8"`
	RetailPrice float64 `json:"retail_price" parquet:"name=retail_price,type=DOUBLE"`
}

type BundleRecord struct {
	Timestamp       int64   `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	BundleID        string  `json:"bundle_id" parquet:"name=bundle_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	VendorID        string  `json:"vendor_id" parquet:"name=vendor_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Category        string  `json:"category" parquet:"name=category,type=BYTE_ARRAY,convertedtype=UTF8"`
	Name            string  `json:"name" parquet:"name=name,type=BYTE_ARRAY,convertedtype=UTF8"`
	Description     string  `json:"description" parquet:"name=description,type=BYTE_ARRAY,convertedtype=UTF8"`
	RetailPrice     float64 `json:"retail_price" parquet:"name=retail_price,type=DOUBLE"`
	Price           float64 `json:"price" parquet:"name=price,type=DOUBLE"`
	PostingTime     int64   `json:"posting_time" parquet:"name=posting_time,type=INT64"`
	CollectionStart int64   `json:"collection_start" parquet:"name=collection_start,type=INT64"`
	CollectionEnd   int64   `json:"collection_end" parquet:"name=collection_end,type=INT64"`
}

type BundleProductRecord struct {
	Timestamp int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	BundleID  string `json:"bundle_id" parquet:"name=bundle_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	ProductID string `json:"product_id" parquet:"name=product_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Quantity  int32  `json:"quantity" parquet:"name=quantity,type=INT32"`
}

type ReservationRecord struct {
	Timestamp        int64   `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	ReservationID    string  `json:"reservation_id" parquet:"name=reservation_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	BundleID         string  `json:"bundle_id" parquet:"name=bundle_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	UserID           string  `json:"user_id" parquet:"name=user_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	AmountDue        float64 `json:"amount_due" parquet:"name=amount_due,type=DOUBLE"`
	ReservationTime  int64   `json:"reservation_time" parquet:"name=reservation_time,type=INT64"`
	CollectionStatus string  `json:"collection_status" parquet:"name=collection_status,type=BYTE_ARRAY,convertedtype=UTF8"`
	CollectionTime   *int64  `json:"collection_time" parquet:"name=collection_time,type=INT64,repetitiontype=OPTIONAL"`
}

type UserRecord struct {
	Timestamp          int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	UserID             string `json:"user_id" parquet:"name=user_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Username           string `json:"username" parquet:"name=username,type=BYTE_ARRAY,convertedtype=UTF8"`
	Email              string `json:"email" parquet:"name=email,type=BYTE_ARRAY,convertedtype=UTF8"`
	Streak             int32  `json:"streak" parquet:"name=streak,type=INT32"`
	LastCollectionTime *int64 `json:"date_last_collection" parquet:"name=date_last_collection,type=INT64,repetitiontype=OPTIONAL"`
}

type DisputeRecord struct {
	Timestamp      int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	DisputeID      string `json:"dispute_id" parquet:"name=dispute_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	ReservationID  string `json:"reservation_id" parquet:"name=reservation_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	UserID         string `json:"user_id" parquet:"name=user_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	VendorID       string `json:"vendor_id" parquet:"name=vendor_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Scenario       string `json:"scenario" parquet:"name=scenario,type=BYTE_ARRAY,convertedtype=UTF8"`
	Reason         string `json:"reason" parquet:"name=reason,type=BYTE_ARRAY,convertedtype=UTF8"`
	VendorResponse string `json:"vendor_response" parquet:"name=vendor_response,type=BYTE_ARRAY,convertedtype=UTF8"`
	Status         string `json:"status" parquet:"name=status,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// DatasetRecord is one labelled training row.
type DatasetRecord struct {
	Timestamp    int64   `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	BundleID     string  `json:"bundle_id" parquet:"name=bundle_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Discount     float64 `json:"discount" parquet:"name=discount,type=DOUBLE"`
	Price        float64 `json:"price" parquet:"name=price,type=DOUBLE"`
	Weather      string  `json:"weather" parquet:"name=weather,type=BYTE_ARRAY,convertedtype=UTF8"`
	Category     string  `json:"category" parquet:"name=category,type=BYTE_ARRAY,convertedtype=UTF8"`
	Temperature  float64 `json:"temperature" parquet:"name=temperature,type=DOUBLE"`
	Day          string  `json:"day" parquet:"name=day,type=BYTE_ARRAY,convertedtype=UTF8"`
	LeadTime     float64 `json:"lead_time" parquet:"name=lead_time,type=DOUBLE"`
	WindowLength float64 `json:"window_length" parquet:"name=window_length,type=DOUBLE"`
	TimeOfDay    float64 `json:"time_of_day" parquet:"name=time_of_day,type=DOUBLE"`
	IsReserved   bool    `json:"is_reserved" parquet:"name=is_reserved,type=BOOLEAN"`
	IsCollected  bool    `json:"is_collected" parquet:"name=is_collected,type=BOOLEAN"`
}

type LifecycleEventRecord struct {
	Timestamp int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType string `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	EntityID  string `json:"entityId" parquet:"name=entityId,type=BYTE_ARRAY,convertedtype=UTF8"`
	BundleID  string `json:"bundleId,omitempty" parquet:"name=bundleId,type=BYTE_ARRAY,convertedtype=UTF8"`
	UserID    string `json:"userId,omitempty" parquet:"name=userId,type=BYTE_ARRAY,convertedtype=UTF8"`
	VendorID  string `json:"vendorId,omitempty" parquet:"name=vendorId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Status    string `json:"status,omitempty" parquet:"name=status,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// recordTypes gives the concrete record type of each topic, used to decode
// messages and to derive parquet schemas.
var recordTypes = map[string]reflect.Type{
	TopicVendors:         reflect.TypeOf(VendorRecord{}),
	TopicProducts:        reflect.TypeOf(ProductRecord{}),
	TopicBundles:         reflect.TypeOf(BundleRecord{}),
	TopicBundleProducts:  reflect.TypeOf(BundleProductRecord{}),
	TopicReservations:    reflect.TypeOf(ReservationRecord{}),
	TopicUsers:           reflect.TypeOf(UserRecord{}),
	TopicDisputes:        reflect.TypeOf(DisputeRecord{}),
	TopicDataset:         reflect.TypeOf(DatasetRecord{}),
	TopicLifecycleEvents: reflect.TypeOf(LifecycleEventRecord{}),
}

// NewRecord returns a pointer to a zero record for topic.
func NewRecord(topic string) (interface{}, error) {
	t, ok := recordTypes[topic]
	if !ok {
		return nil, fmt.Errorf("unknown topic: %s", topic)
	}
	return reflect.New(t).Interface(), nil
}

// DecodeRecord unmarshals msg into the topic's record type and returns the
// record by value.
func DecodeRecord(topic string, msg []byte) (interface{}, error) {
	rec, err := NewRecord(topic)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(msg, rec); err != nil {
		return nil, fmt.Errorf("failed to decode %s record: %w", topic, err)
	}
	return reflect.ValueOf(rec).Elem().Interface(), nil
}

func unixPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ts := t.Unix()
	return &ts
}

func NewVendorRecord(v models.Vendor, asOf time.Time) VendorRecord {
	categories, _ := json.Marshal(v.Categories)
	return VendorRecord{
		Timestamp:  asOf.Unix(),
		VendorID:   v.ID,
		Name:       v.Name,
		Archetype:  v.Archetype,
		Postcode:   v.Postcode,
		Lat:        v.Location.Lat,
		Lon:        v.Location.Lon,
		Categories: string(categories),
	}
}

func NewProductRecord(p models.Product, asOf time.Time) ProductRecord {
	return ProductRecord{
		Timestamp:   asOf.Unix(),
		ProductID:   p.ID,
		VendorID:    p.VendorID,
		Name:        p.Name,
		Category:    p.Category,
		RetailPrice: p.RetailPrice,
	}
}

func NewBundleRecord(b models.Bundle) BundleRecord {
	return BundleRecord{
		Timestamp:       b.PostingTime.Unix(),
		BundleID:        b.ID,
		VendorID:        b.VendorID,
		Category:        b.Category,
		Name:            b.Name,
		Description:     b.Description,
		RetailPrice:     b.RetailPrice,
		Price:           b.Price,
		PostingTime:     b.PostingTime.Unix(),
		CollectionStart: b.CollectionStart.Unix(),
		CollectionEnd:   b.CollectionEnd.Unix(),
	}
}

func NewBundleProductRecord(bp models.BundleProduct, postedAt time.Time) BundleProductRecord {
	return BundleProductRecord{
		Timestamp: postedAt.Unix(),
		BundleID:  bp.BundleID,
		ProductID: bp.ProductID,
		Quantity:  int32(bp.Quantity),
	}
}

func NewReservationRecord(r models.Reservation) ReservationRecord {
	return ReservationRecord{
		Timestamp:        r.ReservationTime.Unix(),
		ReservationID:    r.ID,
		BundleID:         r.BundleID,
		UserID:           r.UserID,
		AmountDue:        r.AmountDue,
		ReservationTime:  r.ReservationTime.Unix(),
		CollectionStatus: r.CollectionStatus,
		CollectionTime:   unixPtr(r.CollectionTime),
	}
}

func NewUserRecord(u models.User, asOf time.Time) UserRecord {
	return UserRecord{
		Timestamp:          asOf.Unix(),
		UserID:             u.ID,
		Username:           u.Username,
		Email:              u.Email,
		Streak:             int32(u.Streak),
		LastCollectionTime: unixPtr(u.LastCollectionTime),
	}
}

func NewDisputeRecord(d models.Dispute, raisedAt time.Time) DisputeRecord {
	return DisputeRecord{
		Timestamp:      raisedAt.Unix(),
		DisputeID:      d.ID,
		ReservationID:  d.ReservationID,
		UserID:         d.UserID,
		VendorID:       d.VendorID,
		Scenario:       d.Scenario,
		Reason:         d.Reason,
		VendorResponse: d.VendorResponse,
		Status:         d.Status,
	}
}

func NewDatasetRecord(row models.FeatureRow, postedAt time.Time) DatasetRecord {
	return DatasetRecord{
		Timestamp:    postedAt.Unix(),
		BundleID:     row.BundleID,
		Discount:     row.Discount,
		Price:        row.Price,
		Weather:      row.Weather,
		Category:     row.Category,
		Temperature:  row.Temperature,
		Day:          row.Day,
		LeadTime:     row.LeadTime,
		WindowLength: row.WindowLength,
		TimeOfDay:    row.TimeOfDay,
		IsReserved:   row.IsReserved,
		IsCollected:  row.IsCollected,
	}
}

func NewLifecycleEventRecord(e models.Event) LifecycleEventRecord {
	rec := LifecycleEventRecord{
		Timestamp: e.Time.Unix(),
		EventType: e.Type,
		EntityID:  e.EntityID,
	}
	switch data := e.Data.(type) {
	case models.Bundle:
		rec.BundleID = data.ID
		rec.VendorID = data.VendorID
	case models.Reservation:
		rec.BundleID = data.BundleID
		rec.UserID = data.UserID
		rec.Status = data.CollectionStatus
	case models.Dispute:
		rec.UserID = data.UserID
		rec.VendorID = data.VendorID
		rec.Status = data.Status
	}
	return rec
}

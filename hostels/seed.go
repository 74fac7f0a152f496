package hostels

import "hostelhub/models"

var seed = []models.Hostel{
	{
		ID:                 "1",
		Name:               "Hostel Alpha",
		Location:           "Downtown Core",
		Price:              "$25/night",
		Rating:             4.5,
		ImageURL:           "https://images.unsplash.com/photo-1523240795612-9a054b0db644?w=800&auto=format&fit=crop&q=60",
		Description:        "Modern hostel in the heart of downtown with excellent amenities and friendly staff.",
		Amenities:          []string{"Free WiFi", "24/7 Reception", "Common Kitchen", "Laundry"},
		RoomTypes:          []string{"Dormitory", "Private Room", "Double Room"},
		Rules:              []string{"No smoking", "Quiet hours 10PM-7AM", "No pets allowed"},
		NearbyUniversities: []string{"City University", "Downtown College"},
	},
	{
		ID:                 "2",
		Name:               "Beachside Backpackers",
		Location:           "Coastal Area",
		Price:              "$30/night",
		Rating:             4.0,
		ImageURL:           "https://images.unsplash.com/photo-1560185007-5f0bb1866cab?w=800&auto=format&fit=crop&q=60",
		Description:        "Beautiful beachfront hostel with stunning ocean views and a relaxed atmosphere.",
		Amenities:          []string{"Beach Access", "Outdoor Pool", "BBQ Area", "Free WiFi"},
		RoomTypes:          []string{"Dormitory", "Private Room"},
		Rules:              []string{"No smoking indoors", "Beach equipment available", "Lockers provided"},
		NearbyUniversities: []string{"Coastal University", "Marine Institute"},
	},
	{
		ID:                 "3",
		Name:               "City Central Hub",
		Location:           "City Center",
		Price:              "$20/night",
		Rating:             3.8,
		ImageURL:           "https://images.unsplash.com/photo-1555854877-bab0e564b8d5?w=800&auto=format&fit=crop&q=60",
		Description:        "Budget-friendly hostel in the city center, perfect for students and backpackers.",
		Amenities:          []string{"Study Room", "Free WiFi", "Bike Rental", "Tour Desk"},
		RoomTypes:          []string{"Dormitory", "Private Room"},
		Rules:              []string{"No smoking", "ID required", "Curfew at 2AM"},
		NearbyUniversities: []string{"Central University", "City College"},
	},
	{
		ID:                 "4",
		Name:               "Urban Retreat Hostel",
		Location:           "Downtown Core",
		Price:              "$28/night",
		Rating:             4.2,
		ImageURL:           "https://images.unsplash.com/photo-1523240795612-9a054b0db644?w=800&auto=format&fit=crop&q=60",
		Description:        "Contemporary hostel with modern design and excellent facilities.",
		Amenities:          []string{"Gym Access", "Rooftop Terrace", "Free WiFi", "Café"},
		RoomTypes:          []string{"Dormitory", "Private Room", "Family Room"},
		Rules:              []string{"No smoking", "No pets", "Quiet hours 11PM-7AM"},
		NearbyUniversities: []string{"Urban University", "Downtown Institute"},
	},
	{
		ID:                 "5",
		Name:               "Sunset Point Hostel",
		Location:           "Coastal Area",
		Price:              "$35/night",
		Rating:             4.7,
		ImageURL:           "https://images.unsplash.com/photo-1560185007-5f0bb1866cab?w=800&auto=format&fit=crop&q=60",
		Description:        "Luxury hostel with panoramic views and premium amenities.",
		Amenities:          []string{"Infinity Pool", "Spa Access", "Restaurant", "Free WiFi"},
		RoomTypes:          []string{"Private Room", "Suite", "Dormitory"},
		Rules:              []string{"No smoking", "Dress code in restaurant", "Pool hours 7AM-10PM"},
		NearbyUniversities: []string{"Sunset University", "Coastal College"},
	},
	{
		ID:                 "6",
		Name:               "Historic District Stay",
		Location:           "Old Town",
		Price:              "$22/night",
		Rating:             4.1,
		ImageURL:           "https://images.unsplash.com/photo-1555854877-bab0e564b8d5?w=800&auto=format&fit=crop&q=60",
		Description:        "Charming hostel in a historic building with traditional architecture.",
		Amenities:          []string{"Library", "Garden", "Free WiFi", "Tour Guide"},
		RoomTypes:          []string{"Dormitory", "Private Room"},
		Rules:              []string{"No smoking", "Heritage building rules apply", "No food in rooms"},
		NearbyUniversities: []string{"Historic University", "Old Town College"},
	},
	{
		ID:                 "7",
		Name:               "Mountain View Hostel",
		Location:           "Hillside",
		Price:              "$40/night",
		Rating:             4.9,
		ImageURL:           "https://images.unsplash.com/photo-1523240795612-9a054b0db644?w=800&auto=format&fit=crop&q=60",
		Description:        "Scenic hostel with breathtaking mountain views and outdoor activities.",
		Amenities:          []string{"Hiking Trails", "Hot Tub", "Free WiFi", "Restaurant"},
		RoomTypes:          []string{"Private Room", "Dormitory", "Cabin"},
		Rules:              []string{"No smoking", "Hiking gear available", "Check weather conditions"},
		NearbyUniversities: []string{"Mountain University", "Hillside College"},
	},
}

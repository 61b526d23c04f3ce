package passgen

// Built-in ground terminal catalogues. Node ids are the slice indexes.

var europeTerminals = []GroundTerminal{
	{Name: "London, England", LatDeg: 51.5074, LonDeg: -0.1278, AltM: 35},
	{Name: "Paris, France", LatDeg: 48.8566, LonDeg: 2.3522, AltM: 35},
	{Name: "Berlin, Germany", LatDeg: 52.5200, LonDeg: 13.4050, AltM: 34},
	{Name: "Rome, Italy", LatDeg: 41.9028, LonDeg: 12.4964, AltM: 21},
	{Name: "Madrid, Spain", LatDeg: 40.4168, LonDeg: -3.7038, AltM: 667},
	{Name: "Prague, Czech Republic", LatDeg: 50.0755, LonDeg: 14.4378, AltM: 200},
	{Name: "Budapest, Hungary", LatDeg: 47.4979, LonDeg: 19.0402, AltM: 96},
	{Name: "Stockholm, Sweden", LatDeg: 59.3293, LonDeg: 18.0686, AltM: 28},
	{Name: "Helsinki, Finland", LatDeg: 60.1695, LonDeg: 24.9354, AltM: 16},
	{Name: "Copenhagen, Denmark", LatDeg: 55.6761, LonDeg: 12.5683, AltM: 1},
	{Name: "Vilnius, Lithuania", LatDeg: 54.6872, LonDeg: 25.2797, AltM: 112},
	{Name: "Riga, Latvia", LatDeg: 56.9496, LonDeg: 24.1052, AltM: 6},
	{Name: "Minsk, Belarus", LatDeg: 53.9006, LonDeg: 27.5590, AltM: 220},
	{Name: "Brussels, Belgium", LatDeg: 50.8503, LonDeg: 4.3517, AltM: 13},
	{Name: "Vienna, Austria", LatDeg: 48.2082, LonDeg: 16.3738, AltM: 193},
	{Name: "Geneva, Switzerland", LatDeg: 46.2044, LonDeg: 6.1432, AltM: 375},
	{Name: "Sofia, Bulgaria", LatDeg: 42.6977, LonDeg: 23.3219, AltM: 550},
	{Name: "Bucharest, Romania", LatDeg: 44.4268, LonDeg: 26.1025, AltM: 70},
	{Name: "Zagreb, Croatia", LatDeg: 45.8150, LonDeg: 15.9819, AltM: 122},
	{Name: "Sarajevo, Bosnia and Herzegovina", LatDeg: 43.8563, LonDeg: 18.4131, AltM: 500},
	{Name: "Podgorica, Montenegro", LatDeg: 42.4410, LonDeg: 19.2621, AltM: 107},
	{Name: "Skopje, North Macedonia", LatDeg: 41.9981, LonDeg: 21.4254, AltM: 240},
	{Name: "Ankara, Turkey", LatDeg: 39.9208, LonDeg: 32.8541, AltM: 938},
	{Name: "Athens, Greece", LatDeg: 37.9838, LonDeg: 23.7275, AltM: 70},
	{Name: "Milan, Italy", LatDeg: 45.4642, LonDeg: 9.1900, AltM: 120},
	{Name: "Bordeaux, France", LatDeg: 44.8381, LonDeg: -0.5792, AltM: 7},
	{Name: "Barcelona, Spain", LatDeg: 41.3851, LonDeg: 2.1734, AltM: 12},
	{Name: "Nice, France", LatDeg: 43.7102, LonDeg: 7.2620, AltM: 10},
	{Name: "Luxembourg City, Luxembourg", LatDeg: 49.6117, LonDeg: 6.1319, AltM: 289},
	{Name: "Bruges, Belgium", LatDeg: 51.2093, LonDeg: 3.2247, AltM: 8},
	{Name: "Dublin, Ireland", LatDeg: 53.3498, LonDeg: -6.2603, AltM: 20},
	{Name: "Edinburgh, Scotland", LatDeg: 55.9533, LonDeg: -3.1883, AltM: 47},
	{Name: "Newcastle, England", LatDeg: 54.9783, LonDeg: -1.6174, AltM: 46},
	{Name: "Glasgow, Scotland", LatDeg: 55.8642, LonDeg: -4.2518, AltM: 20},
	{Name: "Zurich, Switzerland", LatDeg: 47.3769, LonDeg: 8.5417, AltM: 408},
	{Name: "Graz, Austria", LatDeg: 47.0707, LonDeg: 15.4395, AltM: 353},
	{Name: "Nuremberg, Germany", LatDeg: 49.4521, LonDeg: 11.0767, AltM: 309},
	{Name: "Frankfurt, Germany", LatDeg: 50.1109, LonDeg: 8.6821, AltM: 112},
	{Name: "Lyon, France", LatDeg: 45.7607, LonDeg: 4.8357, AltM: 173},
	{Name: "Bologna, Italy", LatDeg: 44.4949, LonDeg: 11.3426, AltM: 54},
	{Name: "Naples, Italy", LatDeg: 40.8518, LonDeg: 14.2681, AltM: 17},
	{Name: "Toulouse, France", LatDeg: 43.6047, LonDeg: 1.4442, AltM: 146},
	{Name: "Antwerp, Belgium", LatDeg: 51.2194, LonDeg: 4.4025, AltM: 8},
	{Name: "Brighton, England", LatDeg: 51.5072, LonDeg: 0.1276, AltM: 10},
	{Name: "Gothenburg, Sweden", LatDeg: 57.7089, LonDeg: 11.9746, AltM: 12},
	{Name: "Bergen, Norway", LatDeg: 60.3932, LonDeg: 5.3242, AltM: 20},
	{Name: "Oslo, Norway", LatDeg: 59.9139, LonDeg: 10.7522, AltM: 23},
	{Name: "Trondheim, Norway", LatDeg: 63.4305, LonDeg: 10.3951, AltM: 10},
	{Name: "Uppsala, Sweden", LatDeg: 59.8586, LonDeg: 17.6389, AltM: 15},
	{Name: "Odense, Denmark", LatDeg: 55.4038, LonDeg: 10.4024, AltM: 5},
	{Name: "Gdansk, Poland", LatDeg: 54.3520, LonDeg: 18.6466, AltM: 7},
	{Name: "Warsaw, Poland", LatDeg: 52.2297, LonDeg: 21.0122, AltM: 113},
	{Name: "Krakow, Poland", LatDeg: 50.0647, LonDeg: 19.9450, AltM: 219},
	{Name: "Poznan, Poland", LatDeg: 52.4064, LonDeg: 16.9252, AltM: 60},
	{Name: "Torun, Poland", LatDeg: 53.0138, LonDeg: 18.5984, AltM: 67},
	{Name: "Amsterdam, Netherlands", LatDeg: 52.5204, LonDeg: 4.8952, AltM: 2},
	{Name: "Rotterdam, Netherlands", LatDeg: 51.9244, LonDeg: 4.4777, AltM: 0},
	{Name: "Maastricht, Netherlands", LatDeg: 50.8514, LonDeg: 5.6909, AltM: 45},
	{Name: "Dusseldorf, Germany", LatDeg: 51.2277, LonDeg: 6.7735, AltM: 45},
	{Name: "Dortmund, Germany", LatDeg: 51.5136, LonDeg: 7.4653, AltM: 60},
	{Name: "Hamburg, Germany", LatDeg: 53.5511, LonDeg: 9.9937, AltM: 6},
	{Name: "Bremen, Germany", LatDeg: 53.0758, LonDeg: 8.8072, AltM: 12},
	{Name: "Munich, Germany", LatDeg: 48.1351, LonDeg: 11.5820, AltM: 519},
	{Name: "Basel, Switzerland", LatDeg: 47.5677, LonDeg: 7.5970, AltM: 244},
	{Name: "Grenoble, France", LatDeg: 45.1885, LonDeg: 5.7245, AltM: 212},
	{Name: "Marseille, France", LatDeg: 43.2965, LonDeg: 5.3698, AltM: 10},
	{Name: "Belgrade, Serbia", LatDeg: 44.8378, LonDeg: 20.4216, AltM: 117},
	{Name: "Prizren, Kosovo", LatDeg: 42.8794, LonDeg: 20.8756, AltM: 609},
	{Name: "Tirana, Albania", LatDeg: 41.3275, LonDeg: 19.8189, AltM: 110},
	{Name: "Andorra la Vella, Andorra", LatDeg: 42.5624, LonDeg: 1.5333, AltM: 1023},
	{Name: "Ljubljana, Slovenia", LatDeg: 46.0569, LonDeg: 14.5058, AltM: 298},
	{Name: "Debrecen, Hungary", LatDeg: 47.5008, LonDeg: 19.0567, AltM: 104},
	{Name: "Katowice, Poland", LatDeg: 50.0750, LonDeg: 19.9030, AltM: 281},
	{Name: "Cluj-Napoca, Romania", LatDeg: 46.7667, LonDeg: 23.5833, AltM: 360},
	{Name: "Brasov, Romania", LatDeg: 45.6486, LonDeg: 25.6062, AltM: 600},
	{Name: "Yerevan, Armenia", LatDeg: 40.1786, LonDeg: 44.5126, AltM: 989},
	{Name: "Kifisia, Greece", LatDeg: 38.0194, LonDeg: 23.8439, AltM: 125},
	{Name: "Malaga, Spain", LatDeg: 36.7213, LonDeg: -4.4214, AltM: 11},
	{Name: "Murcia, Spain", LatDeg: 37.9922, LonDeg: -1.1307, AltM: 43},
	{Name: "Bilbao, Spain", LatDeg: 43.2627, LonDeg: -2.9253, AltM: 19},
	{Name: "Valencia, Spain", LatDeg: 39.4699, LonDeg: -0.3763, AltM: 15},
	{Name: "Lisbon, Portugal", LatDeg: 38.7169, LonDeg: -9.1390, AltM: 100},
	{Name: "Porto, Portugal", LatDeg: 41.1496, LonDeg: -8.6109, AltM: 104},
	{Name: "Faro, Portugal", LatDeg: 38.7369, LonDeg: -9.1390, AltM: 12},
	{Name: "Jyvaskyla, Finland", LatDeg: 62.2426, LonDeg: 25.7473, AltM: 117},
	{Name: "Tartu, Estonia", LatDeg: 58.3806, LonDeg: 26.7251, AltM: 57},
	{Name: "Nizhny Novgorod, Russia", LatDeg: 56.3322, LonDeg: 43.9978, AltM: 171},
	{Name: "Moscow, Russia", LatDeg: 55.7558, LonDeg: 37.6173, AltM: 156},
	{Name: "Saint Petersburg, Russia", LatDeg: 59.9343, LonDeg: 30.3351, AltM: 20},
	{Name: "Samara, Russia", LatDeg: 53.1959, LonDeg: 50.1007, AltM: 160},
	{Name: "Chernivtsi, Ukraine", LatDeg: 48.2920, LonDeg: 25.9358, AltM: 248},
	{Name: "Odessa, Ukraine", LatDeg: 46.4825, LonDeg: 30.7233, AltM: 50},
	{Name: "Kyiv, Ukraine", LatDeg: 50.4017, LonDeg: 30.2525, AltM: 179},
	{Name: "Ternopil, Ukraine", LatDeg: 49.5535, LonDeg: 25.5948, AltM: 320},
	{Name: "Novi Sad, Serbia", LatDeg: 45.2631, LonDeg: 19.8310, AltM: 82},
	{Name: "Tbilisi, Georgia", LatDeg: 41.7208, LonDeg: 44.7831, AltM: 450},
	{Name: "Patras, Greece", LatDeg: 38.2484, LonDeg: 21.7346, AltM: 15},
	{Name: "Aberdeen, Scotland", LatDeg: 57.1424, LonDeg: -2.0927, AltM: 65},
	{Name: "Drammen, Norway", LatDeg: 60.4720, LonDeg: 8.4689, AltM: 140},
	{Name: "Lublin, Poland", LatDeg: 51.2195, LonDeg: 22.5684, AltM: 174},
}

var worldTerminals = []GroundTerminal{
	{Name: "New York, USA", LatDeg: 40.7128, LonDeg: -74.0060, AltM: 0},
	{Name: "Los Angeles, USA", LatDeg: 34.0522, LonDeg: -118.2437, AltM: 0},
	{Name: "Paris, France", LatDeg: 48.8566, LonDeg: 2.3522, AltM: 0},
	{Name: "London, UK", LatDeg: 51.5074, LonDeg: -0.1278, AltM: 0},
	{Name: "Tokyo, Japan", LatDeg: 35.6895, LonDeg: 139.6917, AltM: 0},
	{Name: "Sydney, Australia", LatDeg: -33.8688, LonDeg: 151.2093, AltM: 0},
	{Name: "Rio de Janeiro, Brazil", LatDeg: -22.9068, LonDeg: -43.1729, AltM: 0},
	{Name: "Moscow, Russia", LatDeg: 55.7558, LonDeg: 37.6173, AltM: 0},
	{Name: "New Delhi, India", LatDeg: 28.6139, LonDeg: 77.2090, AltM: 0},
	{Name: "Nairobi, Kenya", LatDeg: -1.2921, LonDeg: 36.8219, AltM: 0},
	{Name: "Buenos Aires, Argentina", LatDeg: -34.6037, LonDeg: -58.3816, AltM: 0},
	{Name: "Mexico City, Mexico", LatDeg: 19.4326, LonDeg: -99.1332, AltM: 0},
	{Name: "San Francisco, USA", LatDeg: 37.7749, LonDeg: -122.4194, AltM: 0},
	{Name: "Singapore, Singapore", LatDeg: 1.3521, LonDeg: 103.8198, AltM: 0},
	{Name: "Shanghai, China", LatDeg: 31.2304, LonDeg: 121.4737, AltM: 0},
	{Name: "Rome, Italy", LatDeg: 41.9028, LonDeg: 12.4964, AltM: 0},
	{Name: "Johannesburg, South Africa", LatDeg: -26.2041, LonDeg: 28.0473, AltM: 0},
	{Name: "Beijing, China", LatDeg: 39.9042, LonDeg: 116.4074, AltM: 0},
	{Name: "Lima, Peru", LatDeg: -12.0464, LonDeg: -77.0428, AltM: 0},
	{Name: "Toronto, Canada", LatDeg: 43.6511, LonDeg: -79.3470, AltM: 0},
	{Name: "Tehran, Iran", LatDeg: 35.6897, LonDeg: 51.3890, AltM: 0},
	{Name: "Stockholm, Sweden", LatDeg: 59.3293, LonDeg: 18.0686, AltM: 0},
	{Name: "Melbourne, Australia", LatDeg: -37.8136, LonDeg: 144.9631, AltM: 0},
	{Name: "Jakarta, Indonesia", LatDeg: -6.2088, LonDeg: 106.8456, AltM: 0},
	{Name: "Kuala Lumpur, Malaysia", LatDeg: 3.1390, LonDeg: 101.6869, AltM: 0},
	{Name: "Wellington, New Zealand", LatDeg: -41.2865, LonDeg: 174.7762, AltM: 0},
	{Name: "Madrid, Spain", LatDeg: 40.4168, LonDeg: -3.7038, AltM: 0},
	{Name: "Amsterdam, Netherlands", LatDeg: 52.3676, LonDeg: 4.9041, AltM: 0},
	{Name: "Brasília, Brazil", LatDeg: -15.7942, LonDeg: -47.8822, AltM: 0},
	{Name: "Cairo, Egypt", LatDeg: 30.0444, LonDeg: 31.2357, AltM: 0},
	{Name: "Durban, South Africa", LatDeg: -29.8587, LonDeg: 31.0218, AltM: 0},
	{Name: "Osaka, Japan", LatDeg: 34.6937, LonDeg: 135.5023, AltM: 0},
	{Name: "Kinshasa, DR Congo", LatDeg: -4.4419, LonDeg: 15.2663, AltM: 0},
	{Name: "Helsinki, Finland", LatDeg: 60.1699, LonDeg: 24.9384, AltM: 0},
	{Name: "Montreal, Canada", LatDeg: 45.5017, LonDeg: -73.5673, AltM: 0},
	{Name: "Dubai, UAE", LatDeg: 25.276987, LonDeg: 55.296249, AltM: 0},
	{Name: "Bujumbura, Burundi", LatDeg: -3.3731, LonDeg: 29.9189, AltM: 0},
	{Name: "Canberra, Australia", LatDeg: -35.2820, LonDeg: 149.1287, AltM: 0},
	{Name: "São Paulo, Brazil", LatDeg: -23.5505, LonDeg: -46.6333, AltM: 0},
	{Name: "Central Canada", LatDeg: 56.1304, LonDeg: -106.3468, AltM: 0},
	{Name: "Manila, Philippines", LatDeg: 14.5995, LonDeg: 120.9842, AltM: 0},
	{Name: "Reykjavik, Iceland", LatDeg: 64.1355, LonDeg: -21.8954, AltM: 0},
	{Name: "Bangkok, Thailand", LatDeg: 13.7563, LonDeg: 100.5018, AltM: 0},
	{Name: "Prague, Czech Republic", LatDeg: 50.0755, LonDeg: 14.4378, AltM: 0},
	{Name: "Alice Springs, Australia", LatDeg: -24.9916, LonDeg: 135.2254, AltM: 0},
	{Name: "Antarctic Research Base", LatDeg: -62.4663, LonDeg: -60.8000, AltM: 0},
	{Name: "Mumbai, India", LatDeg: 19.0760, LonDeg: 72.8777, AltM: 0},
	{Name: "Dublin, Ireland", LatDeg: 53.3498, LonDeg: -6.2603, AltM: 0},
	{Name: "Ushuaia, Argentina", LatDeg: -54.8019, LonDeg: -68.3029, AltM: 0},
	{Name: "Utqiaġvik (Barrow), USA", LatDeg: 71.2906, LonDeg: -156.7886, AltM: 0},
	{Name: "Iguazu, Brazil", LatDeg: -25.6953, LonDeg: -54.4367, AltM: 0},
	{Name: "Copenhagen, Denmark", LatDeg: 55.6761, LonDeg: 12.5683, AltM: 0},
	{Name: "Vilnius, Lithuania", LatDeg: 54.6872, LonDeg: 25.2797, AltM: 0},
	{Name: "Nuuk, Greenland", LatDeg: 64.1814, LonDeg: -51.7216, AltM: 0},
	{Name: "Delhi, India", LatDeg: 28.7041, LonDeg: 77.1025, AltM: 0},
	{Name: "Kathmandu, Nepal", LatDeg: 27.7172, LonDeg: 85.3240, AltM: 0},
	{Name: "Lagos, Nigeria", LatDeg: 6.5244, LonDeg: 3.3792, AltM: 0},
	{Name: "Douala, Cameroon", LatDeg: 4.0511, LonDeg: 9.7679, AltM: 0},
	{Name: "Punta Arenas, Chile", LatDeg: -53.1638, LonDeg: -70.9171, AltM: 0},
	{Name: "Nassau, Bahamas", LatDeg: 25.0343, LonDeg: -77.3963, AltM: 0},
	{Name: "Harare, Zimbabwe", LatDeg: -17.8249, LonDeg: 31.0532, AltM: 0},
	{Name: "Bahia, Brazil", LatDeg: -9.4431, LonDeg: -40.4305, AltM: 0},
	{Name: "Tasiilaq, Greenland", LatDeg: 66.8390, LonDeg: -50.7197, AltM: 0},
	{Name: "Port of Spain, Trinidad", LatDeg: 10.6400, LonDeg: -61.5189, AltM: 0},
	{Name: "Karachi, Pakistan", LatDeg: 24.8607, LonDeg: 67.0011, AltM: 0},
	{Name: "Champaign, USA", LatDeg: 40.1106, LonDeg: -88.2073, AltM: 0},
	{Name: "Zurich, Switzerland", LatDeg: 47.3769, LonDeg: 8.5417, AltM: 0},
	{Name: "Antananarivo, Madagascar", LatDeg: -18.8792, LonDeg: 47.5079, AltM: 0},
	{Name: "Sapporo, Japan", LatDeg: 35.6892, LonDeg: 139.6917, AltM: 0},
	{Name: "Bali, Indonesia", LatDeg: -8.4095, LonDeg: 115.1889, AltM: 0},
	{Name: "Edinburgh, Scotland", LatDeg: 55.9533, LonDeg: -3.1883, AltM: 0},
	{Name: "Hanoi, Vietnam", LatDeg: 21.0285, LonDeg: 105.8542, AltM: 0},
	{Name: "Lisbon, Portugal", LatDeg: 38.7223, LonDeg: -9.1393, AltM: 0},
	{Name: "Boston, USA", LatDeg: 42.3601, LonDeg: -71.0589, AltM: 0},
	{Name: "Kyoto, Japan", LatDeg: 35.0116, LonDeg: 135.7681, AltM: 0},
	{Name: "Miami, USA", LatDeg: 25.7617, LonDeg: -80.1918, AltM: 0},
	{Name: "Brussels, Belgium", LatDeg: 50.8503, LonDeg: 4.3517, AltM: 0},
	{Name: "Tallinn, Estonia", LatDeg: 59.4370, LonDeg: 24.7536, AltM: 0},
	{Name: "Istanbul, Turkey", LatDeg: 41.0082, LonDeg: 28.9784, AltM: 0},
	{Name: "Wilmington, USA", LatDeg: 34.2257, LonDeg: -77.9447, AltM: 0},
	{Name: "Memphis, USA", LatDeg: 35.1167, LonDeg: -89.9500, AltM: 0},
	{Name: "Budapest, Hungary", LatDeg: 47.4979, LonDeg: 19.0402, AltM: 0},
	{Name: "Fortaleza, Brazil", LatDeg: -3.745, LonDeg: -38.523, AltM: 0},
	{Name: "Monaco", LatDeg: 43.7384, LonDeg: 7.4246, AltM: 0},
	{Name: "Chennai, India", LatDeg: 13.0827, LonDeg: 80.2707, AltM: 0},
	{Name: "Glasgow, Scotland", LatDeg: 55.8642, LonDeg: -4.2518, AltM: 0},
	{Name: "Darwin, Australia", LatDeg: -12.4634, LonDeg: 130.8456, AltM: 0},
	{Name: "Athens, Greece", LatDeg: 37.9838, LonDeg: 23.7275, AltM: 0},
	{Name: "Jerusalem, Israel", LatDeg: 31.7683, LonDeg: 35.2137, AltM: 0},
	{Name: "Thingvellir, Iceland", LatDeg: 64.9631, LonDeg: -19.0208, AltM: 0},
	{Name: "Sacramento, USA", LatDeg: 38.5744, LonDeg: -121.4944, AltM: 0},
	{Name: "Atlanta, USA", LatDeg: 33.7490, LonDeg: -84.3880, AltM: 0},
	{Name: "Geneva, Switzerland", LatDeg: 46.2044, LonDeg: 6.1432, AltM: 0},
	{Name: "Khartoum, Sudan", LatDeg: 15.5007, LonDeg: 32.5599, AltM: 0},
	{Name: "Denver, USA", LatDeg: 39.7392, LonDeg: -104.9903, AltM: 0},
	{Name: "Las Vegas, USA", LatDeg: 36.1699, LonDeg: -115.1398, AltM: 0},
	{Name: "Samara, Russia", LatDeg: 53.1959, LonDeg: 50.1007, AltM: 160},
	{Name: "Chernivtsi, Ukraine", LatDeg: 48.2920, LonDeg: 25.9358, AltM: 248},
	{Name: "Debrecen, Hungary", LatDeg: 47.5008, LonDeg: 19.0567, AltM: 104},
	{Name: "Cluj-Napoca, Romania", LatDeg: 46.7667, LonDeg: 23.5833, AltM: 360},
}
